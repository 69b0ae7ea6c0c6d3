package domain

import (
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("shop item not found")

// ShopItem is a reward priced in tokens. FormLink points at the external
// fulfillment form opened after a successful quote.
type ShopItem struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Cost        int       `json:"cost" bson:"cost"`
	FormLink    string    `json:"form_link,omitempty" bson:"form_link,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
