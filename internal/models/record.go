package models

import "time"

// DateLayout renders a record date as DD-MM-YYYY.
const DateLayout = "02-01-2006"

// CareerRecord is one row handed to the row store.
type CareerRecord struct {
	Name   string
	Career string
	Date   string
}

func NewCareerRecord(name, career string, now time.Time) CareerRecord {
	return CareerRecord{Name: name, Career: career, Date: now.Format(DateLayout)}
}

// Row returns the record in spreadsheet column order.
func (c CareerRecord) Row() []string {
	return []string{c.Name, c.Career, c.Date}
}

// RecordRequest is the JSON body for POST /record.
type RecordRequest struct {
	Name   string `json:"name"`
	Career string `json:"career"`
}

// TranscribeRequest is the JSON body for POST /transcribe.
type TranscribeRequest struct {
	AudioData string `json:"audioData"`
}
