package bedtime

import "fmt"

// Display titles and the fixed failure text.
const (
	SuccessTitle   = "Your Ideal Bedtime"
	FailureTitle   = "Error"
	FailureMessage = "There was a problem calculating your bedtime. Please try again."
)

// Message is what the display surface shows.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"message"`
	OK    bool   `json:"-"`
}

// Describe renders a successful result with the given clock layout.
func Describe(r Result, layout string) Message {
	h, m := r.Breakdown()
	return Message{
		Title: SuccessTitle,
		Body: fmt.Sprintf("Your ideal bedtime is %s. You will get %d hours and %d minutes of sleep.",
			r.Bedtime.Format(layout), h, m),
		OK: true,
	}
}

// Failure is the message for any failed estimate.
func Failure() Message {
	return Message{Title: FailureTitle, Body: FailureMessage}
}

// Present maps an estimate outcome onto a message. Any error yields Failure.
func Present(r Result, err error, layout string) Message {
	if err != nil {
		return Failure()
	}
	return Describe(r, layout)
}
