package api

import (
	"errors"                              // Error comparison
	"net/http"                            // HTTP status codes
	"restaurant_booking/internal/booking" // Booking rules
	"restaurant_booking/internal/domain"  // Importing domain models
	"restaurant_booking/internal/store"   // Persistence
	"strconv"                             // Form values

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// NewBooking renders the reservation form prefilled from the session user
func (h *Handler) NewBooking(c *gin.Context) {
	r, ok := h.loadRestaurant(c, false)
	if !ok {
		return
	}
	user := mustUser(c)
	form := booking.Form{
		UserName:    user.Username,
		Email:       user.Email,
		PartySize:   "2",
		BookingDate: h.today().Format(booking.DateLayout),
	}
	h.renderBookingForm(c, http.StatusOK, r, nil, form, booking.Errors{})
}

// CreateBooking validates and stores a reservation
func (h *Handler) CreateBooking(c *gin.Context) {
	r, ok := h.loadRestaurant(c, false)
	if !ok {
		return
	}
	user := mustUser(c)
	var form booking.Form // Bind form to struct
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Warn("Booking form could not be read")
		c.Redirect(http.StatusSeeOther, "/restaurants/"+strconv.FormatUint(uint64(r.ID), 10)+"?error=booking_failed")
		return
	}
	form = form.Normalize()

	errs := h.checkBooking(c, r.ID, form, 0)
	if len(errs) > 0 {
		h.renderBookingForm(c, http.StatusUnprocessableEntity, r, nil, form, errs)
		return
	}
	b := domain.Booking{
		RestaurantID: r.ID,
		UserID:       user.ID,
		UserName:     form.UserName,
		Email:        form.Email,
		Phone:        form.Phone,
		PartySize:    form.Party(),
		BookingDate:  form.BookingDate,
		BookingTime:  form.BookingTime,
	}
	if err := h.Store.CreateBooking(c.Request.Context(), &b); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			// Another booking won the slot between the check and the insert
			h.renderBookingForm(c, http.StatusUnprocessableEntity, r, nil, form, booking.Errors{"booking_time": booking.MsgSlotTaken})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":       user.ID,     // Booking user
			"restaurant_id": r.ID,        // Restaurant ID
			"error":         err.Error(), // Error message
		}).Error("Failed to create booking")
		c.Redirect(http.StatusSeeOther, "/restaurants/"+strconv.FormatUint(uint64(r.ID), 10)+"?error=booking_failed")
		return
	}
	logrus.WithFields(logrus.Fields{
		"booking_id":    b.ID,          // Booking ID
		"user_id":       user.ID,       // Booking user
		"restaurant_id": r.ID,          // Restaurant ID
		"date":          b.BookingDate, // Booked date
		"time":          b.BookingTime, // Booked slot
		"party_size":    b.PartySize,   // Guests
	}).Info("Booking created")
	c.Redirect(http.StatusSeeOther, "/reservations?notice=booked")
}

// ListBookings renders the session user's reservations
func (h *Handler) ListBookings(c *gin.Context) {
	user := mustUser(c)
	bookings, err := h.Store.ListUserBookings(c.Request.Context(), user.ID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Failed to list bookings")
		h.render(c, http.StatusInternalServerError, "error.tmpl", gin.H{"Status": http.StatusInternalServerError, "Message": "bookings are unavailable"})
		return
	}
	h.render(c, http.StatusOK, "bookings.tmpl", gin.H{"Title": "My bookings", "Bookings": bookings})
}

// EditBooking renders the form for one of the user's reservations
func (h *Handler) EditBooking(c *gin.Context) {
	b, ok := h.loadOwnBooking(c)
	if !ok {
		return
	}
	form := booking.Form{
		UserName:    b.UserName,
		Email:       b.Email,
		Phone:       b.Phone,
		PartySize:   strconv.Itoa(b.PartySize),
		BookingDate: b.BookingDate,
		BookingTime: b.BookingTime,
	}
	h.renderBookingForm(c, http.StatusOK, &b.Restaurant, b, form, booking.Errors{})
}

// UpdateBooking re-validates and saves a reservation; its own slot does not conflict
func (h *Handler) UpdateBooking(c *gin.Context) {
	b, ok := h.loadOwnBooking(c)
	if !ok {
		return
	}
	var form booking.Form // Bind form to struct
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithFields(logrus.Fields{"booking_id": b.ID, "error": err.Error()}).Warn("Booking form could not be read")
		c.Redirect(http.StatusSeeOther, "/reservations?error=booking_failed")
		return
	}
	form = form.Normalize()

	errs := h.checkBooking(c, b.RestaurantID, form, b.ID)
	if len(errs) > 0 {
		h.renderBookingForm(c, http.StatusUnprocessableEntity, &b.Restaurant, b, form, errs)
		return
	}
	b.UserName = form.UserName
	b.Email = form.Email
	b.Phone = form.Phone
	b.PartySize = form.Party()
	b.BookingDate = form.BookingDate
	b.BookingTime = form.BookingTime
	if err := h.Store.UpdateBooking(c.Request.Context(), b); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			h.renderBookingForm(c, http.StatusUnprocessableEntity, &b.Restaurant, b, form, booking.Errors{"booking_time": booking.MsgSlotTaken})
			return
		}
		logrus.WithFields(logrus.Fields{
			"booking_id": b.ID,        // Booking ID
			"error":      err.Error(), // Error message
		}).Error("Failed to update booking")
		c.Redirect(http.StatusSeeOther, "/reservations?error=booking_failed")
		return
	}
	logrus.WithFields(logrus.Fields{"booking_id": b.ID, "date": b.BookingDate, "time": b.BookingTime}).Info("Booking updated")
	c.Redirect(http.StatusSeeOther, "/reservations?notice=booking_saved")
}

// DeleteBooking cancels a reservation and frees its slot
func (h *Handler) DeleteBooking(c *gin.Context) {
	b, ok := h.loadOwnBooking(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteBooking(c.Request.Context(), b.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		logrus.WithFields(logrus.Fields{"booking_id": b.ID, "error": err.Error()}).Error("Failed to cancel booking")
		c.Redirect(http.StatusSeeOther, "/reservations?error=booking_failed")
		return
	}
	logrus.WithField("booking_id", b.ID).Info("Booking cancelled")
	c.Redirect(http.StatusSeeOther, "/reservations?notice=cancelled")
}

// checkBooking runs the field rules, then the slot check once the fields are valid
func (h *Handler) checkBooking(c *gin.Context, restaurantID uint, form booking.Form, excludeID uint) booking.Errors {
	errs := booking.Validate(form, h.today())
	if len(errs) > 0 {
		return errs
	}
	taken, err := h.Store.SlotTaken(c.Request.Context(), restaurantID, form.BookingDate, form.BookingTime, excludeID)
	if err != nil {
		// the unique index still guards the write
		logrus.WithFields(logrus.Fields{"restaurant_id": restaurantID, "error": err.Error()}).Warn("Slot check failed")
		return errs
	}
	if taken {
		errs.Add("booking_time", booking.MsgSlotTaken)
	}
	return errs
}

// loadOwnBooking resolves :id to a booking owned by the session user
func (h *Handler) loadOwnBooking(c *gin.Context) (*domain.Booking, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c, "booking not found")
		return nil, false
	}
	b, err := h.Store.FindBooking(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logrus.WithFields(logrus.Fields{"booking_id": id, "error": err.Error()}).Error("Failed to load booking")
		}
		h.notFound(c, "booking not found")
		return nil, false
	}
	if b.UserID != mustUser(c).ID {
		h.render(c, http.StatusForbidden, "error.tmpl", gin.H{"Status": http.StatusForbidden, "Message": "this booking belongs to someone else"})
		return nil, false
	}
	return b, true
}

func (h *Handler) renderBookingForm(c *gin.Context, status int, r *domain.Restaurant, b *domain.Booking, form booking.Form, errs booking.Errors) {
	h.render(c, status, "booking_form.tmpl", gin.H{
		"Title":      "Book " + r.Name,
		"Restaurant": r,                                    // Restaurant being booked
		"Booking":    b,                                    // Nil for a new booking
		"Form":       form,                                 // Submitted or prefilled input
		"Errors":     errs,                                 // Field errors
		"Slots":      booking.Slots,                        // Hourly seatings
		"Today":      h.today().Format(booking.DateLayout), // Earliest selectable date
	})
}
