package algorithms

// Community represents a detected community
type Community struct {
	ID    int
	Nodes []string
	Size  int
}

// CommunityResult contains the detected partition of the graph
type CommunityResult struct {
	Communities   []*Community
	Modularity    float64        // Quality measure of the partitioning
	NodeCommunity map[string]int // Node ID -> Community ID
	Levels        int            // Aggregation levels the optimisation ran
}
