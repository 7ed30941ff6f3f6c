package model

import "time"

// Event is the only persisted entity.
// ImageURL and NFTMintAddress are nil until set.
type Event struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	Location       string    `json:"location" db:"location"`
	StartDate      time.Time `json:"startDate" db:"start_date"`
	EndDate        time.Time `json:"endDate" db:"end_date"`
	ImageURL       *string   `json:"imageUrl" db:"image_url"`
	NFTMintAddress *string   `json:"nftMintAddress" db:"nft_mint_address"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// HasMint reports whether a token was minted for the event
func (e *Event) HasMint() bool {
	return e.NFTMintAddress != nil && *e.NFTMintAddress != ""
}

// EventInput is a validated, typed request ready for storage.
// It carries only the editable fields; the mint address is never part of it.
type EventInput struct {
	Title       string
	Description string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	ImageURL    *string
}

// Apply copies the editable fields onto e
func (in EventInput) Apply(e *Event) {
	e.Title = in.Title
	e.Description = in.Description
	e.Location = in.Location
	e.StartDate = in.StartDate
	e.EndDate = in.EndDate
	e.ImageURL = in.ImageURL
}
