package application

import "strings"

type Status string

const (
	StatusNew       Status = "new"
	StatusReviewed  Status = "reviewed"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

var Statuses = []Status{
	StatusNew,
	StatusReviewed,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// transitions lists, per current status, the statuses an employer may set.
// Every pair is allowed today, including reopening a rejected application.
var transitions = func() map[Status]map[Status]bool {
	t := make(map[Status]map[Status]bool, len(Statuses))
	for _, from := range Statuses {
		t[from] = make(map[Status]bool, len(Statuses))
		for _, to := range Statuses {
			t[from][to] = true
		}
	}
	return t
}()

func CanTransition(from, to Status) bool {
	return transitions[from][to]
}
