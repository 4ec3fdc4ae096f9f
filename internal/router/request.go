package router

import (
	"encoding/json"
	"github.com/maxaizer/job-saver/internal/entities"
)

type Kind string

const (
	KindCheckAuth    Kind = "CHECK_AUTH"
	KindSaveJob      Kind = "SAVE_JOB"
	KindUpdateStatus Kind = "UPDATE_STATUS"
	KindFetchJobs    Kind = "FETCH_JOBS"
)

// Request is one of four cases, which fields are meaningful depends on Kind.
type Request struct {
	Kind   Kind                 `json:"type"`
	Job    *entities.ScrapedJob `json:"data,omitempty"`
	ID     string               `json:"jobId,omitempty"` // opaque page id assigned by Notion
	Status string               `json:"status,omitempty"`
}

func CheckAuth() Request {
	return Request{Kind: KindCheckAuth}
}

func SaveJob(job entities.ScrapedJob) Request {
	return Request{Kind: KindSaveJob, Job: &job}
}

func UpdateStatus(id, status string) Request {
	return Request{Kind: KindUpdateStatus, ID: id, Status: status}
}

func FetchJobs() Request {
	return Request{Kind: KindFetchJobs}
}

// UnmarshalJSON also accepts {"action": "CHECK_AUTH"}, the shape the popup sends for auth checks.
func (r *Request) UnmarshalJSON(b []byte) error {
	type alias Request
	var raw struct {
		alias
		Action Kind `json:"action"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*r = Request(raw.alias)
	if r.Kind == "" {
		r.Kind = raw.Action
	}
	return nil
}

// Response is the envelope every request ends in, Dispatch never fails otherwise.
type Response struct {
	OK            bool   `json:"ok"`
	Data          any    `json:"data,omitempty"`
	Error         string `json:"error,omitempty"`
	Authenticated *bool  `json:"authenticated,omitempty"`
	SetupRequired bool   `json:"setupRequired,omitempty"`
}

type SavedJob struct {
	ID string `json:"id"`
}

type UpdatedStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
