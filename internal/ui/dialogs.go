package ui

import (
	"greenpath/internal/actions"
	"greenpath/internal/form"
	"greenpath/internal/model"
)

const datePlaceholder = "YYYY-MM-DD (not Sunday)"

var pickupFields = []formField{
	{name: "wasteType", label: "Waste Type", kind: selectField, options: actions.WasteTypes, placeholder: "Select waste type", required: true},
	{name: "description", label: "Description", placeholder: "What needs collecting?", required: true, charLimit: 500},
	{name: "address", label: "Pickup Address", placeholder: "House, street, area", required: true},
	{name: "date", label: "Pickup Date", placeholder: datePlaceholder, required: true, charLimit: 32},
	{name: "timeSlot", label: "Time Slot", kind: selectField, options: actions.TimeSlots, placeholder: "Select a slot", required: true},
	{name: "instructions", label: "Instructions", placeholder: "Gate code, landmarks... (optional)", charLimit: 300},
}

var issueFields = []formField{
	{name: "title", label: "Title", placeholder: "Short summary", required: true, charLimit: 100},
	{name: "issueType", label: "Issue Type", kind: selectField, options: actions.IssueTypes, placeholder: "Select issue type", required: true},
	{name: "description", label: "Description", placeholder: "What happened?", required: true, charLimit: 500},
	{name: "location", label: "Location", placeholder: "Where is it?", required: true},
	{name: "isUrgent", label: "Urgent", kind: toggleField, placeholder: "needs attention today"},
}

var helpFields = []formField{
	{name: "title", label: "Title", placeholder: "What do you need?", required: true, charLimit: 100},
	{name: "category", label: "Category", kind: selectField, options: actions.HelpCategories, placeholder: "Select category", required: true},
	{name: "description", label: "Description", placeholder: "Describe the help you need", required: true, charLimit: 500},
	{name: "location", label: "Location", placeholder: "Area or address", required: true},
	{name: "contactPhone", label: "Contact Phone", placeholder: "10 digit number", required: true, charLimit: 20},
	{name: "isUrgent", label: "Urgent", kind: toggleField, placeholder: "needed as soon as possible"},
}

var feedbackFields = []formField{
	{name: "rating", label: "Rating", kind: selectField, options: actions.Ratings, placeholder: "Select a rating", required: true},
	{name: "feedbackType", label: "About", kind: selectField, options: actions.FeedbackTypes, placeholder: "Select feedback type", required: true},
	{name: "comments", label: "Comments", placeholder: "Tell us more", required: true, charLimit: 1000},
}

var donationFields = []formField{
	{name: "donationType", label: "Donation Type", kind: selectField, options: actions.DonationTypes, placeholder: "Select donation type", required: true},
	{name: "condition", label: "Condition", kind: selectField, options: actions.Conditions, placeholder: "Select condition", required: true},
	{name: "quantity", label: "Quantity", placeholder: "Number of items", required: true, charLimit: 10},
	{name: "description", label: "Description", placeholder: "Describe the items", required: true, charLimit: 500},
	{name: "name", label: "Full Name", required: true, charLimit: 100},
	{name: "email", label: "Email", required: true, charLimit: 100},
	{name: "phone", label: "Phone", required: true, charLimit: 20},
	{name: "address", label: "Address", placeholder: "House, street, area", required: true},
	{name: "city", label: "City", required: true, charLimit: 60},
	{name: "pinCode", label: "PIN Code", required: true, charLimit: 10},
	{name: "isPacked", label: "Items Packed?", kind: selectField, options: actions.YesNo, placeholder: "Select", required: true},
	{name: "isUrgent", label: "Urgent", kind: toggleField, placeholder: "pick up as soon as possible"},
	{name: "date", label: "Pickup Date", placeholder: datePlaceholder, required: true, charLimit: 32},
	{name: "timeSlot", label: "Time Slot", kind: selectField, options: actions.TimeSlots, placeholder: "Select a slot", required: true},
	{name: "additionalNotes", label: "Additional Notes", placeholder: "Optional", charLimit: 500},
}

func newPickupDialog(d actions.Deps) *formView[actions.PickupValues, model.WasteReport] {
	return newFormView("Schedule Pickup", pickupFields,
		form.New(actions.PickupSchema(d.Now), nil),
		actions.NewPickupMutation(d), actions.PickupScheduled, actions.PickupFailedTitle)
}

func newIssueDialog(d actions.Deps) *formView[actions.IssueValues, model.Issue] {
	return newFormView("Raise Issue", issueFields,
		form.New(actions.IssueSchema(), map[string]string{"isUrgent": "false"}),
		actions.NewIssueMutation(d), actions.IssueRaised, actions.IssueFailedTitle)
}

func newHelpDialog(d actions.Deps) *formView[actions.HelpValues, model.HelpRequest] {
	return newFormView("Seek Community Help", helpFields,
		form.New(actions.HelpSchema(), actions.HelpDefaults(d.Profile)),
		actions.NewHelpMutation(d), actions.HelpRequested, actions.HelpFailedTitle)
}

func newFeedbackDialog(d actions.Deps) *formView[actions.FeedbackValues, model.Feedback] {
	return newFormView("Share Feedback", feedbackFields,
		form.New(actions.FeedbackSchema(), nil),
		actions.NewFeedbackMutation(d), actions.FeedbackSubmitted, actions.FeedbackFailedTitle)
}

func newDonationForm(d actions.Deps) *formView[actions.DonationValues, model.Donation] {
	return newFormView("Donate Items", donationFields,
		form.New(actions.DonationSchema(d.Now), actions.DonationDefaults(d.Profile)),
		actions.NewDonationMutation(d), actions.DonationSubmitted, actions.DonationFailedTitle)
}
