package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/repository"
)

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

func marshalIDCard(card *domain.IDCard) (interface{}, error) {
	if card == nil {
		return nil, nil
	}
	b, err := json.Marshal(card)
	if err != nil {
		return nil, fmt.Errorf("marshal id card: %w", err)
	}
	return b, nil
}

func unmarshalIDCard(raw []byte) (*domain.IDCard, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	card := &domain.IDCard{}
	if err := json.Unmarshal(raw, card); err != nil {
		return nil, fmt.Errorf("unmarshal id card: %w", err)
	}
	return card, nil
}

func (r *contactRepository) Create(ctx context.Context, c *domain.Contact) error {
	card1, err := marshalIDCard(c.IDCard1)
	if err != nil {
		return err
	}
	card2, err := marshalIDCard(c.IDCard2)
	if err != nil {
		return err
	}
	query := `INSERT INTO contacts (id, owner_id, name, phone, address, relative_name, alternate_phone, note, id_card1, id_card2, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	c.CreatedOn = time.Now()
	_, err = r.db.ExecContext(ctx, query, c.ID, c.OwnerID, c.Name, c.Phone, c.Address, c.RelativeName, c.AlternatePhone, c.Note, card1, card2, c.CreatedOn)
	return err
}

func (r *contactRepository) scanContact(row *sql.Row) (*domain.Contact, error) {
	c := &domain.Contact{}
	var card1, card2 []byte
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Address, &c.RelativeName, &c.AlternatePhone, &c.Note, &card1, &card2, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.IDCard1, err = unmarshalIDCard(card1); err != nil {
		return nil, err
	}
	if c.IDCard2, err = unmarshalIDCard(card2); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contactRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	query := `SELECT id, owner_id, name, phone, address, relative_name, alternate_phone, note, id_card1, id_card2, created_on
	          FROM contacts WHERE id = $1 AND owner_id = $2`
	return r.scanContact(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *contactRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	query := `SELECT id, owner_id, name, phone, address, relative_name, alternate_phone, note, id_card1, id_card2, created_on
	          FROM contacts WHERE owner_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		var card1, card2 []byte
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Address, &c.RelativeName, &c.AlternatePhone, &c.Note, &card1, &card2, &c.CreatedOn); err != nil {
			return nil, err
		}
		if c.IDCard1, err = unmarshalIDCard(card1); err != nil {
			return nil, err
		}
		if c.IDCard2, err = unmarshalIDCard(card2); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *contactRepository) Update(ctx context.Context, c *domain.Contact) error {
	card1, err := marshalIDCard(c.IDCard1)
	if err != nil {
		return err
	}
	card2, err := marshalIDCard(c.IDCard2)
	if err != nil {
		return err
	}
	query := `UPDATE contacts SET name = $1, phone = $2, address = $3, relative_name = $4, alternate_phone = $5, note = $6, id_card1 = $7, id_card2 = $8
	          WHERE id = $9 AND owner_id = $10`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Address, c.RelativeName, c.AlternatePhone, c.Note, card1, card2, c.ID, c.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}
