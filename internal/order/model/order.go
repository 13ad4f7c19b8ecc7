package model

import "time"

type Order struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	CardNumber string    `db:"card_number"`
	Expiry     string    `db:"expiry"`
	CVV        string    `db:"cvv"`
	CreatedAt  time.Time `db:"created_at"`
}

// OrderForm holds the raw fields submitted by the user.
type OrderForm struct {
	Name       string
	Email      string
	CardNumber string
	Expiry     string
	CVV        string
}
