package xkcd

import (
	"fmt"
	"strconv"
	"time"
)

// ToComic validates the date fields of r and returns the resulting Comic.
// It fails with a KindParse error if year, month or day is not an integer,
// and with a KindDate error if they do not name a real calendar day.
func (r ComicResponse) ToComic() (*Comic, error) {
	year, err := parseDatePart("year", r.Year)
	if err != nil {
		return nil, err
	}
	month, err := parseDatePart("month", r.Month)
	if err != nil {
		return nil, err
	}
	day, err := parseDatePart("day", r.Day)
	if err != nil {
		return nil, err
	}

	date, err := calendarDate(year, month, day)
	if err != nil {
		return nil, err
	}

	return &Comic{
		Num:        r.Num,
		Title:      r.Title,
		Link:       r.Link,
		Alt:        r.Alt,
		Img:        r.Img,
		News:       r.News,
		Transcript: r.Transcript,
		Date:       date,
	}, nil
}

func parseDatePart(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &Error{Kind: KindParse, Field: field, Value: value, Err: err}
	}
	return n, nil
}

// calendarDate builds midnight UTC for the given day. time.Date silently
// normalizes out-of-range values (Feb 31 becomes Mar 3), so the result is
// compared back against the inputs.
func calendarDate(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, &Error{Kind: KindDate, Message: fmt.Sprintf("month %d out of range", month)}
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, &Error{Kind: KindDate, Message: fmt.Sprintf("%04d-%02d-%02d is not a calendar date", year, month, day)}
	}
	return t, nil
}
