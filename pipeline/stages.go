package pipeline

// StageConfig is the role-labeled prompt persona for one pipeline stage.
// These mirror the three specialist roles of the content workflow.
type StageConfig struct {
	Name      string
	Role      string
	Goal      string
	Backstory string
}

var stageConfigs = map[string]StageConfig{
	StageAnalyze: {
		Name: StageAnalyze,
		Role: "Video Content Analyzer",
		Goal: "Extract key insights, main points, and engaging content from YouTube videos",
		Backstory: "You are an expert content analyst with deep understanding of video content. " +
			"You excel at identifying the most compelling and shareable aspects of videos, " +
			"understanding audience engagement patterns, and extracting actionable insights.",
	},
	StageDraft: {
		Name: StageDraft,
		Role: "Creative Content Writer",
		Goal: "Transform video insights into engaging, platform-optimized content",
		Backstory: "You are a creative content writer who specializes in adapting video content " +
			"for different social media platforms. You understand what makes content viral " +
			"and how to craft compelling narratives that resonate with different audiences.",
	},
	StageOptimize: {
		Name: StageOptimize,
		Role: "Platform Optimization Specialist",
		Goal: "Optimize content specifically for Instagram or Medium based on platform best practices",
		Backstory: "You are a social media expert who understands the unique requirements and " +
			"best practices for different platforms. You know how to format content for " +
			"maximum engagement on Instagram and Medium, including hashtags, formatting, " +
			"and platform-specific features.",
	},
}

// Stages returns the stage configs in execution order.
func Stages() []StageConfig {
	return []StageConfig{stageConfigs[StageAnalyze], stageConfigs[StageDraft], stageConfigs[StageOptimize]}
}
