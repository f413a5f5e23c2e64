package dto

// Side identifies which side of the debate an argument belongs to.
type Side string

const (
	SideBull Side = "bull"
	SideBear Side = "bear"
)

// Case is one side's opening research case.
type Case struct {
	Side Side   `json:"side"`
	Text string `json:"text"`
}

// DebateRound is one completed round of rebuttals. The bull rebuttal is
// always produced before the bear rebuttal.
type DebateRound struct {
	Round        int    `json:"round"`
	BullRebuttal string `json:"bull_rebuttal"`
	BearRebuttal string `json:"bear_rebuttal"`
}

// JudgeVerdict is the parsed outcome of the judging call.
type JudgeVerdict struct {
	Winner          Side     `json:"winner"`
	Confidence      int      `json:"confidence"`
	WinningArgument string   `json:"winning_argument"`
	KeyPoints       []string `json:"key_points"`
}

// DebateResult is the full outcome of a debate. It is immutable once
// returned by the engine.
type DebateResult struct {
	Transcript      []DebateRound `json:"transcript"`
	Winner          Side          `json:"winner"`
	Confidence      int           `json:"confidence"`
	WinningArgument string        `json:"winning_argument"`
	KeyPoints       []string      `json:"key_points"`
}

// SpecialistScores are the per-dimension 0..10 scores fed to the case
// builders.
type SpecialistScores struct {
	Fundamental float64 `json:"fundamental"`
	Technical   float64 `json:"technical"`
	Sentiment   float64 `json:"sentiment"`
}
