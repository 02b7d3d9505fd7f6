package memory

// SpeechPayload is appended to StreamSpeeches for day discussion, tie
// defences and exile last words. Werewolf dialogue is stored separately, as
// NightDiscussionPayload in StreamNightDiscussions.
type SpeechPayload struct {
	SpeakerID int
	Context   string // "discussion", "tie_defence", "exile_last_words"
	Text      string
}

// VotePayload is appended to StreamVotes when a vote is cast or observed.
type VotePayload struct {
	VoterID  int
	TargetID int
	Fallback bool // true if the vote came from the random-legal-choice fallback
}

// NightActionPayload is appended to StreamNightActions for the acting role's
// own memory (e.g. a seer's divination, a witch's save/poison).
type NightActionPayload struct {
	Role     string
	ActorID  int
	TargetID int
	Outcome  string
}

// ObservationPayload is appended to StreamObservations for ObserveDeath and
// ObserveVote signals (spec §4: "side-effect free signals pushed to the
// agent's memory").
type ObservationPayload struct {
	Kind     string // "death" or "vote"
	PlayerID int
	Cause    string // populated for Kind == "death"
	Voter    int    // populated for Kind == "vote"
	Target   int    // populated for Kind == "vote"
}

// NightDiscussionPayload is appended to StreamNightDiscussions: every
// werewolf's memory mirrors the full dialogue transcript (spec §4.4).
type NightDiscussionPayload struct {
	SpeakerID int
	Round     string // "opening", "debate", "final"
	Text      string
}

// NightThinkingPayload is appended to StreamNightThinking for a seer's or
// witch's private reasoning about their night decision.
type NightThinkingPayload struct {
	Role   string
	Detail string
}

// SelfReflectionPayload is appended to StreamSelfReflection by the day-end
// system (C8) during the end-of-day reflection pass after voting.
type SelfReflectionPayload struct {
	Round       int
	TriggerKind string // "day_end"
	Text        string
}
