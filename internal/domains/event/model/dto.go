package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/mr-tron/base58"
)

// ========================================
// REQUEST DTOs
// ========================================

// EventRequest is the body of POST /events and PUT /events/:id.
// Dates are kept as strings so every field can be reported at once.
type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// dateTimeLayouts are tried in order; zone-less values are read as UTC.
// The short form is what <input type="datetime-local"> submits.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDateTime parses an ISO date-time in one of the accepted layouts
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("must be an ISO date-time (e.g. 2025-01-01T10:00)")
}

var isDateTime = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := ParseDateTime(s)
	return err
})

// Normalize trims surrounding whitespace from every field
func (r *EventRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

// Validate reports every failing field, keyed by its JSON name.
// Start/end ordering is intentionally not checked.
func (r EventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(3, 255).Error("title must be between 3 and 255 characters"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.RuneLength(10, 0).Error("description must be at least 10 characters"),
		),
		validation.Field(&r.Location,
			validation.Required.Error("location is required"),
			validation.RuneLength(2, 255).Error("location must be between 2 and 255 characters"),
		),
		validation.Field(&r.StartDate,
			validation.Required.Error("start date is required"),
			isDateTime,
		),
		validation.Field(&r.EndDate,
			validation.Required.Error("end date is required"),
			isDateTime,
		),
		validation.Field(&r.ImageURL,
			validation.When(r.ImageURL != "",
				is.RequestURL.Error("invalid image URL"),
				validation.Length(0, 500).Error("image URL must be at most 500 characters"),
			),
		),
	)
}

// ToInput normalizes, validates and converts the request.
// The returned error is the raw validation.Errors value.
func (r EventRequest) ToInput() (EventInput, error) {
	r.Normalize()
	if err := r.Validate(); err != nil {
		return EventInput{}, err
	}

	start, _ := ParseDateTime(r.StartDate)
	end, _ := ParseDateTime(r.EndDate)

	in := EventInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartDate:   start,
		EndDate:     end,
	}
	if r.ImageURL != "" {
		url := r.ImageURL
		in.ImageURL = &url
	}
	return in, nil
}

// MintAddressRequest is the body of PUT /events/:id/mint-address
type MintAddressRequest struct {
	NFTMintAddress string `json:"nftMintAddress"`
}

// isSolanaAddress accepts base58 strings decoding to a 32 byte public key
var isSolanaAddress = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != 32 {
		return errors.New("must be a base58 encoded 32 byte address")
	}
	return nil
})

func (r MintAddressRequest) Validate() error {
	r.NFTMintAddress = strings.TrimSpace(r.NFTMintAddress)
	return validation.ValidateStruct(&r,
		validation.Field(&r.NFTMintAddress,
			validation.Required.Error("mint address is required"),
			validation.Length(32, 44).Error("mint address must be 32 to 44 characters"),
			isSolanaAddress,
		),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// CreateEventResponse is returned by POST /events
type CreateEventResponse struct {
	ID string `json:"id"`
}

// DeleteEventResponse is returned by DELETE /events/:id
type DeleteEventResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
