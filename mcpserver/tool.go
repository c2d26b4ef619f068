package mcpserver

import (
	"fmt"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool naming defaults.
const (
	DefaultNamespace = "docs"
	ToolName         = "search_docs"
)

const toolDescription = "Search the documentation site. Quote words to require an exact phrase. " +
	"Returns up to a configured number of hits with highlighted titles and content previews."

// SearchInput is the argument object accepted by search_docs.
type SearchInput struct {
	Query string `json:"query"`
}

// SearchTool builds the search_docs descriptor. An empty namespace falls
// back to DefaultNamespace.
func SearchTool(namespace, version string, tags ...string) (model.Tool, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	tool := model.Tool{
		Tool: mcp.Tool{
			Name:        ToolName,
			Description: toolDescription,
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search text; wrap phrases in double quotes",
					},
				},
				"required": []string{"query"},
			},
		},
		Namespace: namespace,
		Version:   version,
		Tags:      model.NormalizeTags(append([]string{"search", "docs"}, tags...)),
	}
	if err := tool.Validate(); err != nil {
		return model.Tool{}, fmt.Errorf("%w: %v", ErrInvalidTool, err)
	}
	return tool, nil
}
