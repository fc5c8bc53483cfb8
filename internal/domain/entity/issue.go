package entity

// CalendarIssue is a free-standing note bound to a calendar date.
// Several issues may share a date.
type CalendarIssue struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Validate checks the date format and the required title.
func (i CalendarIssue) Validate() error {
	if err := ValidateDate("date", i.Date); err != nil {
		return err
	}
	return ValidateRequired("title", i.Title)
}
