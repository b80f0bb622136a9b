// Package booking holds the reservation rules that do not need the database.
package booking

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire and storage format of booking dates
const DateLayout = "2006-01-02"

// MaxPartySize is the largest party a single booking may hold
const MaxPartySize = 20

var validate = validator.New()

// Slots are the hourly seatings offered every day
var Slots = []string{
	"10:00", "11:00", "12:00", "13:00", "14:00", "15:00",
	"16:00", "17:00", "18:00", "19:00", "20:00", "21:00",
}

// Field error messages
const (
	MsgNameRequired = "name is required"
	MsgPartySize    = "party size must be between 1 and 20"
	MsgDateRequired = "date is required"
	MsgDateInvalid  = "invalid date"
	MsgDatePast     = "past dates cannot be selected"
	MsgTimeRequired = "time is required"
	MsgTimeInvalid  = "please select a valid time slot"
	MsgSlotTaken    = "this time slot is already booked"
	MsgEmailInvalid = "invalid email address"
)

// Form is the raw booking input as submitted
type Form struct {
	UserName    string `form:"user_name"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	PartySize   string `form:"party_size"`
	BookingDate string `form:"booking_date"`
	BookingTime string `form:"booking_time"`
}

// Errors maps a form field to its message
type Errors map[string]string

// Add records msg for field unless the field already has one
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Normalize trims whitespace from every field
func (f Form) Normalize() Form {
	return Form{
		UserName:    strings.TrimSpace(f.UserName),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		PartySize:   strings.TrimSpace(f.PartySize),
		BookingDate: strings.TrimSpace(f.BookingDate),
		BookingTime: strings.TrimSpace(f.BookingTime),
	}
}

// Party returns the parsed party size, zero when unparsable
func (f Form) Party() int {
	n, err := strconv.Atoi(strings.TrimSpace(f.PartySize))
	if err != nil {
		return 0
	}
	return n
}

// Validate checks every rule that does not involve other bookings. today is
// compared by calendar date in its own location.
func Validate(f Form, today time.Time) Errors {
	f = f.Normalize()
	errs := Errors{}

	if f.UserName == "" {
		errs.Add("user_name", MsgNameRequired)
	}
	if n := f.Party(); n < 1 || n > MaxPartySize {
		errs.Add("party_size", MsgPartySize)
	}
	if f.Email != "" {
		if err := validate.Var(f.Email, "email"); err != nil {
			errs.Add("email", MsgEmailInvalid)
		}
	}

	switch date, err := time.Parse(DateLayout, f.BookingDate); {
	case f.BookingDate == "":
		errs.Add("booking_date", MsgDateRequired)
	case err != nil:
		errs.Add("booking_date", MsgDateInvalid)
	case date.Format(DateLayout) < today.Format(DateLayout):
		errs.Add("booking_date", MsgDatePast)
	}

	switch {
	case f.BookingTime == "":
		errs.Add("booking_time", MsgTimeRequired)
	case !ValidSlot(f.BookingTime):
		errs.Add("booking_time", MsgTimeInvalid)
	}

	return errs
}

// ValidSlot reports whether t is one of the offered seatings
func ValidSlot(t string) bool {
	for _, s := range Slots {
		if s == t {
			return true
		}
	}
	return false
}
