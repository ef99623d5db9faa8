package model

// StageInfo describes a constructed stage to the pipeline options.
type StageInfo struct {
	Name     string
	Category Category
	Position int
	// Order is the execution rank, starting at 0.
	Order int
}

var (
	StartStage = &StageInfo{Name: "start", Order: -1}
	EndStage   = &StageInfo{Name: "end", Order: -1}
)
