package domain

import "time"

type IDCardType string

const (
	IDCardTypeLicense  IDCardType = "license"
	IDCardTypeAadhar   IDCardType = "aadhar"
	IDCardTypePassport IDCardType = "passport"
	IDCardTypeOther    IDCardType = "other"
)

// Photo points at an object in blob storage. Name is the storage key
// component, URL is where the client can fetch it.
type Photo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type IDCard struct {
	Type  IDCardType `json:"type"`
	Front *Photo     `json:"front,omitempty"`
	Back  *Photo     `json:"back,omitempty"`
}

type Contact struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	RelativeName   string    `json:"relative_name"`
	AlternatePhone string    `json:"alternate_phone"`
	Note           string    `json:"note"`
	IDCard1        *IDCard   `json:"id_card1,omitempty"`
	IDCard2        *IDCard   `json:"id_card2,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
}

// Photos returns every photo attached to the contact's ID cards.
func (c *Contact) Photos() []Photo {
	var pics []Photo
	for _, card := range []*IDCard{c.IDCard1, c.IDCard2} {
		if card == nil {
			continue
		}
		if card.Front != nil {
			pics = append(pics, *card.Front)
		}
		if card.Back != nil {
			pics = append(pics, *card.Back)
		}
	}
	return pics
}
