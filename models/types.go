package models

import "time"

// Election lifecycle status constants
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusConcluded = "concluded"
)

// Principal role constants (issued by the identity provider)
const (
	RoleVoter     = "voter"
	RoleCandidate = "candidate"
	RoleAdmin     = "admin"
)

// Request types

type CandidateInput struct {
	Name     string `json:"name"`
	Party    string `json:"party"`
	Platform string `json:"platform"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type CreateElectionRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	StartDate   string           `json:"startDate"`
	EndDate     string           `json:"endDate"`
	Candidates  []CandidateInput `json:"candidates"`
}

type RegisterCandidateRequest struct {
	Name     string `json:"name"`
	Party    string `json:"party"`
	Platform string `json:"platform"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidateId"`
}

type RegisterVoterRequest struct {
	FullName string `json:"fullName"`
}

type RegisterCandidateAccountRequest struct {
	FullName string `json:"fullName"`
	Party    string `json:"party"`
}

// Pointers distinguish "flag omitted" from "flag set to false".

type SetVerifiedRequest struct {
	IsVerified *bool `json:"isVerified"`
}

type SetEligibleRequest struct {
	IsEligible *bool `json:"isEligible"`
}

type SummarizePlatformRequest struct {
	PlatformText string `json:"platformText"`
}

type ChatRequest struct {
	Query   string     `json:"query"`
	History []ChatTurn `json:"history,omitempty"`
}

type ChatTurn struct {
	User  string `json:"user,omitempty"`
	Model string `json:"model,omitempty"`
}

// Response types

type CreateElectionResponse struct {
	Message  string   `json:"message"`
	Election Election `json:"election"`
}

type RegisterCandidateResponse struct {
	Message   string    `json:"message"`
	Candidate Candidate `json:"candidate"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SummarizePlatformResponse struct {
	Summary string `json:"summary"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// Domain types

type Candidate struct {
	ID         string `json:"id"`
	ElectionID string `json:"electionId"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	Platform   string `json:"platform"`
	ImageURL   string `json:"imageUrl,omitempty"`
	VoteCount  int    `json:"voteCount"`
}

type Election struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	Status      string      `json:"status"`
	Candidates  []Candidate `json:"candidates"`
}

type CandidateResult struct {
	CandidateID   string `json:"candidateId"`
	CandidateName string `json:"candidateName"`
	VoteCount     int    `json:"voteCount"`
}

type ElectionResults struct {
	ElectionID   string            `json:"electionId"`
	ElectionName string            `json:"electionName"`
	Results      []CandidateResult `json:"results"`
	TotalVotes   int               `json:"totalVotes"`
}

type Voter struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName,omitempty"`
	IsEligible   bool      `json:"isEligible"`
	IsVerified   bool      `json:"isVerified"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type CandidateAccount struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName,omitempty"`
	Party        string    `json:"party,omitempty"`
	IsApproved   bool      `json:"isApproved"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Error response

type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
