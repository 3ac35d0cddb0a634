package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickupForm struct {
	Name     string `form:"name" validate:"min=2" msg:"Name must be at least 2 characters"`
	Email    string `form:"email" validate:"email" msg:"Please enter a valid email address"`
	Notes    string `form:"notes" validate:"min=10"`
	Phone    string `form:"phone" validate:"phone" msg:"Please enter a valid phone number"`
	Slot     string `form:"slot" validate:"required" msg:"Please select a time slot"`
	Date     string `form:"date"`
	Urgent   bool   `form:"urgent"`
	Internal string `form:"-"`
}

// Friday 16 October 2026, mid afternoon.
var friday = time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)

func pickupSchema() *Schema[pickupForm] {
	return New[pickupForm]().With(
		PickupDate("date", func(f pickupForm) string { return f.Date }, func() time.Time { return friday }),
		Choice("slot", func(f pickupForm) string { return f.Slot }, []string{"morning", "evening"}, "Unknown slot"),
	)
}

func validPickup() map[string]string {
	return map[string]string{
		"name":   "Asha",
		"email":  "asha@example.com",
		"notes":  "Two bags of old clothes",
		"phone":  "+91 98765-43210",
		"slot":   "morning",
		"date":   "2026-10-19",
		"urgent": "true",
	}
}

func TestSchema_ValidInput(t *testing.T) {
	got, errs := pickupSchema().Validate(validPickup())
	require.Empty(t, errs)
	assert.Equal(t, "Asha", got.Name)
	assert.True(t, got.Urgent)
	assert.Equal(t, "2026-10-19", got.Date)
}

func TestSchema_FieldMessages(t *testing.T) {
	in := validPickup()
	in["name"] = "A"
	in["email"] = "not-an-email"
	in["notes"] = "short"
	in["slot"] = ""

	got, errs := pickupSchema().Validate(in)
	assert.Equal(t, pickupForm{}, got)
	assert.Equal(t, Errors{
		"name":  "Name must be at least 2 characters",
		"email": "Please enter a valid email address",
		"notes": "Must be at least 10 characters",
		"slot":  "Please select a time slot",
	}, errs)
	assert.Equal(t, []string{"email", "name", "notes", "slot"}, errs.Fields())
}

func TestSchema_BooleanDefaultsFalse(t *testing.T) {
	in := validPickup()
	delete(in, "urgent")
	got, errs := pickupSchema().Validate(in)
	require.Empty(t, errs)
	assert.False(t, got.Urgent)

	in["urgent"] = ""
	got, errs = pickupSchema().Validate(in)
	require.Empty(t, errs)
	assert.False(t, got.Urgent)
}

func TestSchema_UnreadableField(t *testing.T) {
	in := validPickup()
	in["urgent"] = "perhaps"
	_, errs := pickupSchema().Validate(in)
	assert.Contains(t, errs, FormField)
}

func TestSchema_PhoneCountsDigits(t *testing.T) {
	tests := []struct {
		phone string
		ok    bool
	}{
		{"9876543210", true},
		{"+91 98765-43210", true},
		{"(020) 2612-3456", true},
		{"abcdefghij", false},
		{"98765 4321x", false},
		{"987-654-321", false},
		{"98+76543210", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			in := validPickup()
			in["phone"] = tt.phone
			_, errs := pickupSchema().Validate(in)
			if tt.ok {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, Errors{"phone": "Please enter a valid phone number"}, errs)
			}
		})
	}
}

func TestPickupDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "today", date: "2026-10-16"},
		{name: "next monday", date: "2026-10-19"},
		{name: "yesterday", date: "2026-10-15", want: MsgDatePast},
		{name: "sunday", date: "2026-10-18", want: MsgDateSunday},
		{name: "past sunday reports past", date: "2026-10-11", want: MsgDatePast},
		{name: "missing", date: "  ", want: MsgDateRequired},
		{name: "garbage", date: "soon", want: MsgDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validPickup()
			in["date"] = tt.date
			_, errs := pickupSchema().Validate(in)
			if tt.want == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.want, errs["date"])
		})
	}
}

func TestChoice(t *testing.T) {
	in := validPickup()
	in["slot"] = "midnight"
	_, errs := pickupSchema().Validate(in)
	assert.Equal(t, Errors{"slot": "Unknown slot"}, errs)
}

func TestSchema_Fields(t *testing.T) {
	assert.Equal(t, []string{"name", "email", "notes", "phone", "slot", "date", "urgent"}, pickupSchema().Fields())
}

func TestErrors_AddKeepsFirst(t *testing.T) {
	errs := Errors{}
	errs.Add("date", "first")
	errs.Add("date", "second")
	errs.Merge(Errors{"date": "third", "slot": "x"})
	assert.Equal(t, Errors{"date": "first", "slot": "x"}, errs)
}
