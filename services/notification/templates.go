package notification

import (
	"strconv"
	"strings"

	reservationModel "restaurant-reservation/models/reservation"
	"restaurant-reservation/utils"
)

// Template is one piece of customer-facing copy. Subject is only used by
// email adapters; SMS and WhatsApp send the body alone.
type Template struct {
	Subject string
	Body    string
}

var statusTemplates = map[reservationModel.Status]Template{
	reservationModel.StatusPending: {
		Subject: "{restaurant_name} reservation received",
		Body:    "Hi {customer_name}! We received your {restaurant_name} reservation request for {date} at {time} for {party_size} guests. We will confirm it shortly.",
	},
	reservationModel.StatusConfirmed: {
		Subject: "{restaurant_name} reservation confirmed",
		Body:    "Hi {customer_name}! Your {restaurant_name} reservation for {date} at {time} for {party_size} guests is CONFIRMED. See you soon!",
	},
	reservationModel.StatusDeclined: {
		Subject: "{restaurant_name} reservation update",
		Body:    "Hi {customer_name}. Unfortunately, we cannot accommodate your {restaurant_name} reservation for {date} at {time}. Please call {restaurant_phone} for alternatives. Sorry!",
	},
}

// TemplateForStatus returns the copy used when a reservation enters status.
func TemplateForStatus(status reservationModel.Status) (Template, bool) {
	tpl, ok := statusTemplates[status]
	return tpl, ok
}

// Render substitutes the reservation fields and restaurant contact details
// into the template placeholders.
func Render(template string, r reservationModel.Reservation, restaurantName, restaurantPhone string) string {
	result := template
	result = strings.ReplaceAll(result, "{customer_name}", r.CustomerName)
	result = strings.ReplaceAll(result, "{date}", utils.FormatDate(r.Date))
	result = strings.ReplaceAll(result, "{time}", utils.FormatTime(r.Time))
	result = strings.ReplaceAll(result, "{party_size}", strconv.Itoa(r.PartySize))
	result = strings.ReplaceAll(result, "{restaurant_name}", restaurantName)
	result = strings.ReplaceAll(result, "{restaurant_phone}", restaurantPhone)
	return result
}
