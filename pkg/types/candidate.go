// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// NotFound is the sentinel stored in a CandidateRecord field when the
// corresponding extractor recognized nothing. It is applied uniformly to all
// five fields so consumers never need a null or empty-string branch.
const NotFound = "Not found"

// CandidateRecord is the structured result of extracting one résumé.
// Every field holds either a recognized value or NotFound.
type CandidateRecord struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Degree    string `json:"degree" yaml:"degree"`
}

// EmptyRecord returns a record with every field set to NotFound.
func EmptyRecord() CandidateRecord {
	return CandidateRecord{
		FirstName: NotFound,
		LastName:  NotFound,
		Email:     NotFound,
		Phone:     NotFound,
		Degree:    NotFound,
	}
}

// Fields returns the record as ordered (name, value) pairs keyed by the
// serialized field names.
func (r CandidateRecord) Fields() [][2]string {
	return [][2]string{
		{"first_name", r.FirstName},
		{"last_name", r.LastName},
		{"email", r.Email},
		{"phone", r.Phone},
		{"degree", r.Degree},
	}
}

// MissingFields lists the serialized names of fields holding NotFound.
func (r CandidateRecord) MissingFields() []string {
	var missing []string
	for _, f := range r.Fields() {
		if f[1] == NotFound {
			missing = append(missing, f[0])
		}
	}
	return missing
}

// IsComplete reports whether every field was recognized.
func (r CandidateRecord) IsComplete() bool {
	return len(r.MissingFields()) == 0
}

// Submission is one processed document together with its extracted record.
type Submission struct {
	// ID is a UUID assigned when the submission is stored.
	ID string `json:"id" yaml:"id"`

	// Filename is the client-supplied name of the uploaded file.
	Filename string `json:"filename" yaml:"filename"`

	// MediaType is the declared media type the document was decoded as.
	MediaType MediaType `json:"media_type" yaml:"media_type"`

	// Record is the extraction result.
	Record CandidateRecord `json:"record" yaml:"record"`

	// TextLength is the number of characters the decoder produced.
	TextLength int `json:"text_length" yaml:"text_length"`

	// CreatedAt is when the submission was processed (UTC).
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
