package testmatch

// Config holds configuration for synthetic match generation.
type Config struct {
	NumMatches int    // Number of matches to generate
	NumActions int    // Approximate number of actions per match
	Seed       int64  // RNG seed; same seed, same matches
	OutputDir  string // Directory for generated match files
	Verbose    bool   // Enable verbose logging
}

// Stats holds generation statistics.
type Stats struct {
	MatchesGenerated int
	ActionsGenerated int
	GoalsGenerated   int
	ShotsGenerated   int
}
