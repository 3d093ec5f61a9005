package models

import "time"

type Restaurant struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OwnerID    *uint     `json:"owner_id"` // nil until a claim or registration is approved
	Owner      *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name       string    `json:"name" gorm:"not null;index"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Contact    string    `json:"contact"`
	Hours      string    `json:"hours"`
	Cuisines   []string  `json:"cuisines" gorm:"serializer:json"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Claimed    bool      `json:"claimed" gorm:"default:false;index"`
	Documents  []string  `json:"-" gorm:"serializer:json"` // ownership-verification storage keys
	Premium    bool      `json:"premium" gorm:"default:false"`
	PaymentRef *uint     `json:"-"` // subscription record backing premium status
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PublicRestaurant is the projection returned by restaurant search.
// Documents and payment linkage never leave the server.
type PublicRestaurant struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Contact    string   `json:"contact"`
	Hours      string   `json:"hours"`
	Cuisines   []string `json:"cuisines"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
}

func (r *Restaurant) Public() PublicRestaurant {
	return PublicRestaurant{
		ID:         r.ID,
		Name:       r.Name,
		Address:    r.Address,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Contact:    r.Contact,
		Hours:      r.Hours,
		Cuisines:   r.Cuisines,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
	}
}
