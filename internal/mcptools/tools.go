package mcptools

// --- MCP Tool Types for the blog flow server mode ---
// These tools are exposed when the binary runs as an MCP server, so an
// agent host can drive planning and writing as structured tool calls.

// PlanRoadmapInput is the input for the plan_roadmap MCP tool.
type PlanRoadmapInput struct {
	Topic     string `json:"topic" jsonschema:"subject of the blog series"`
	Goal      string `json:"goal" jsonschema:"audience and purpose of the series"`
	OutputDir string `json:"outputDir,omitempty" jsonschema:"directory for artifacts (default: output)"`
}

// PlanRoadmapOutput is the result of the plan_roadmap MCP tool.
type PlanRoadmapOutput struct {
	RoadmapPath string           `json:"roadmapPath"`
	Posts       []OutlineSummary `json:"posts"`
}

// OutlineSummary is one planned post in a tool result.
type OutlineSummary struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// WritePostInput is the input for the write_post MCP tool. The roadmap
// document must already exist in the output directory.
type WritePostInput struct {
	Number    int    `json:"number" jsonschema:"one-based post number from the roadmap"`
	OutputDir string `json:"outputDir,omitempty" jsonschema:"directory holding the roadmap (default: output)"`
}

// WritePostOutput is the result of the write_post MCP tool.
type WritePostOutput struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Path   string `json:"path"`
}

// RunBlogFlowInput is the input for the run_blog_flow MCP tool.
type RunBlogFlowInput struct {
	Topic     string `json:"topic,omitempty" jsonschema:"subject of the blog series (required unless resuming)"`
	Goal      string `json:"goal,omitempty" jsonschema:"audience and purpose of the series"`
	OutputDir string `json:"outputDir,omitempty" jsonschema:"directory for artifacts (default: output)"`
	Resume    bool   `json:"resume,omitempty" jsonschema:"skip planning and resume from the roadmap on disk"`
}

// RunBlogFlowOutput is the result of the run_blog_flow MCP tool.
type RunBlogFlowOutput struct {
	Phase        string        `json:"phase"`
	RoadmapPath  string        `json:"roadmapPath,omitempty"`
	Posts        []PostSummary `json:"posts"`
	FailedNumber int           `json:"failedNumber,omitempty"`
	Message      string        `json:"message,omitempty"`
}

// PostSummary is one written post in a tool result.
type PostSummary struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Path   string `json:"path"`
}

// GetFlowStatusInput is the input for the get_flow_status MCP tool.
type GetFlowStatusInput struct {
	OutputDir string `json:"outputDir,omitempty" jsonschema:"directory to inspect (default: output)"`
}

// GetFlowStatusOutput is the result of the get_flow_status MCP tool.
type GetFlowStatusOutput struct {
	Dir        string        `json:"dir"`
	HasRoadmap bool          `json:"hasRoadmap"`
	Topic      string        `json:"topic,omitempty"`
	Planned    int           `json:"planned"`
	Written    []PostSummary `json:"written"`
	NextNumber int           `json:"nextNumber"`
	Complete   bool          `json:"complete"`
}
