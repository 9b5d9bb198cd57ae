package model

// ExecutionResult 工具执行结果
type ExecutionResult struct {
	ToolID   string   `json:"toolId"`
	Name     string   `json:"name"`
	Type     ToolType `json:"type"`
	URL      string   `json:"url,omitempty"`
	External bool     `json:"external"`

	// CLI 工具
	InstallCommand string `json:"installCommand,omitempty"`
	UsageCommand   string `json:"usageCommand,omitempty"`
	Message        string `json:"message,omitempty"`

	// 内置分析
	Analysis any `json:"analysis,omitempty"`
}
