package models

import (
	"encoding/json"
	"time"
)

// FlightBooking is an opaque itinerary payload supplied by the caller.
// The service does not interpret its structure; it is stored and returned
// verbatim, so any JSON shape the booking frontend produces is accepted.
type FlightBooking = json.RawMessage

// UserRecord is the per-user document stored in the document store,
// keyed by Username. It carries the user's derived credential and the
// ordered history of booked flights.
//
// Sensitive fields must never be exposed outside trusted boundaries:
// PasswordHash is excluded from JSON serialization of API responses,
// which are built from [UserRecord.View].
type UserRecord struct {
	// Username is the unique, immutable key of the record.
	// It doubles as the document key in the document store and as the
	// "sub" claim of issued tokens.
	Username string `json:"username"`

	// PasswordHash is the bcrypt digest of the user's password.
	// This value MUST be a derived value, never plaintext.
	PasswordHash string `json:"password_hash"`

	// Flights is the ordered, append-only list of booked flights.
	// Insertion order is meaningful; the booking ledger only ever appends.
	Flights []FlightBooking `json:"flights"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// UserView is the API-safe projection of a UserRecord: identical content
// with the credential stripped.
type UserView struct {
	Username  string          `json:"username"`
	Flights   []FlightBooking `json:"flights"`
	CreatedAt time.Time       `json:"created_at"`
}

// View returns the record with its PasswordHash stripped, suitable for
// inclusion in API responses.
func (u UserRecord) View() UserView {
	return UserView{
		Username:  u.Username,
		Flights:   u.Flights,
		CreatedAt: u.CreatedAt,
	}
}

// EncodeDocument serializes the record into its document-store form,
// including the password hash.
func (u UserRecord) EncodeDocument() (json.RawMessage, error) {
	return json.Marshal(u)
}

// DecodeUserRecord deserializes a document-store payload back into a
// UserRecord.
func DecodeUserRecord(doc json.RawMessage) (UserRecord, error) {
	var record UserRecord
	if err := json.Unmarshal(doc, &record); err != nil {
		return UserRecord{}, err
	}
	return record, nil
}
