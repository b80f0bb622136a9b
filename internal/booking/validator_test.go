package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC)

func validForm() Form {
	return Form{
		UserName:    "Kim",
		Email:       "kim@example.com",
		Phone:       "010-1234-5678",
		PartySize:   "4",
		BookingDate: "2026-10-15",
		BookingTime: "10:00",
	}
}

func TestValidateAcceptsValidForm(t *testing.T) {
	assert.Empty(t, Validate(validForm(), today))
}

func TestValidateAcceptsToday(t *testing.T) {
	f := validForm()
	f.BookingDate = "2026-10-14"
	assert.Empty(t, Validate(f, today))
}

func TestValidatePartySizeBounds(t *testing.T) {
	cases := []struct {
		size string
		ok   bool
	}{
		{"0", false},
		{"1", true},
		{"20", true},
		{"21", false},
		{"-3", false},
		{"four", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run("size="+tc.size, func(t *testing.T) {
			f := validForm()
			f.PartySize = tc.size
			errs := Validate(f, today)
			if tc.ok {
				assert.NotContains(t, errs, "party_size")
			} else {
				assert.Equal(t, MsgPartySize, errs["party_size"])
			}
		})
	}
}

func TestValidateRejectsPastDate(t *testing.T) {
	f := validForm()
	f.BookingDate = "2020-01-01"
	errs := Validate(f, today)
	assert.Equal(t, MsgDatePast, errs["booking_date"])
	assert.Len(t, errs, 1)
}

func TestValidatePastDateUsesCalendarDay(t *testing.T) {
	f := validForm()
	f.BookingDate = "2026-10-13"
	late := time.Date(2026, time.October, 14, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, MsgDatePast, Validate(f, late)["booking_date"])
}

func TestValidateMissingFields(t *testing.T) {
	errs := Validate(Form{PartySize: "2"}, today)
	assert.Equal(t, MsgNameRequired, errs["user_name"])
	assert.Equal(t, MsgDateRequired, errs["booking_date"])
	assert.Equal(t, MsgTimeRequired, errs["booking_time"])
	assert.NotContains(t, errs, "email")
}

func TestValidateBlankNameIsTrimmed(t *testing.T) {
	f := validForm()
	f.UserName = "   "
	assert.Equal(t, MsgNameRequired, Validate(f, today)["user_name"])
}

func TestValidateRejectsUnknownSlotAndBadDate(t *testing.T) {
	f := validForm()
	f.BookingTime = "09:00"
	f.BookingDate = "15/10/2026"
	errs := Validate(f, today)
	assert.Equal(t, MsgTimeInvalid, errs["booking_time"])
	assert.Equal(t, MsgDateInvalid, errs["booking_date"])
}

func TestValidateRejectsBadEmail(t *testing.T) {
	f := validForm()
	f.Email = "not-an-email"
	assert.Equal(t, MsgEmailInvalid, Validate(f, today)["email"])
}

func TestSlots(t *testing.T) {
	assert.Len(t, Slots, 12)
	assert.Equal(t, "10:00", Slots[0])
	assert.Equal(t, "21:00", Slots[len(Slots)-1])
	assert.True(t, ValidSlot("15:00"))
	assert.False(t, ValidSlot("22:00"))
}

func TestErrorsAddKeepsFirst(t *testing.T) {
	errs := Errors{}
	errs.Add("booking_time", MsgTimeInvalid)
	errs.Add("booking_time", MsgSlotTaken)
	assert.Equal(t, MsgTimeInvalid, errs["booking_time"])
}
