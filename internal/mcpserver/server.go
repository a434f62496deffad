// Package mcpserver exposes sequence collation to MCP clients over stdio,
// so editors and agents can ask "what sequences live in this directory"
// without shelling out to the CLI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fseq/fseq/internal/config"
	"github.com/fseq/fseq/internal/enumerate"
	"github.com/fseq/fseq/internal/present"
	"github.com/fseq/fseq/internal/version"
)

// Server wraps one MCP server instance and the loaded configuration its
// tools fall back to when a call leaves an option unset.
type Server struct {
	cfg    *config.Config
	server *mcp.Server
}

// CollateParams are the arguments of the collate_directory tool. Omitted
// options inherit the server's configuration.
type CollateParams struct {
	Path          string   `json:"path"`
	SplitStrategy string   `json:"split_strategy,omitempty"`
	MergePadding  *bool    `json:"merge_padding,omitempty"`
	Pack          *bool    `json:"pack,omitempty"`
	BakeSingleton *bool    `json:"bake_singleton,omitempty"`
	Sort          *bool    `json:"sort,omitempty"`
	Include       []string `json:"include,omitempty"`
	Exclude       []string `json:"exclude,omitempty"`
}

// NewServer creates an MCP server with the collation tools registered.
func NewServer(cfg *config.Config) *Server {
	s := &Server{cfg: cfg}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "fseq-mcp-server",
		Version: version.Version,
	}, nil)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "collate_directory",
		Description: "Collapse numbered file sequences in a directory into compact patterns with index lists or packed ranges. Returns the same JSON document the fseq CLI prints with --json.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path": {
					Type:        "string",
					Description: "Directory to collate",
				},
				"split_strategy": {
					Type:        "string",
					Description: "Pivot policy for filenames with several digit runs: variance (default), none, first, last",
				},
				"merge_padding": {
					Type:        "boolean",
					Description: "Merge sequences that differ only in zero-padding width",
				},
				"pack": {
					Type:        "boolean",
					Description: "Fold index lists into [start:end]/step ranges",
				},
				"bake_singleton": {
					Type:        "boolean",
					Description: "Report one-element sequences as plain files",
				},
				"sort": {
					Type:        "boolean",
					Description: "Sort the resulting listing canonically",
				},
				"include": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "string"},
					Description: "Only consider files matching these globs",
				},
				"exclude": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "string"},
					Description: "Skip entries matching these globs",
				},
			},
			Required: []string{"path"},
		},
	}, s.handleCollateDirectory)

	s.server.AddTool(&mcp.Tool{
		Name:        "version",
		Description: "Get fseq server version information.",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, s.handleVersion)
}

func (s *Server) handleCollateDirectory(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params CollateParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("collate_directory", fmt.Errorf("invalid parameters: %w", err))
	}
	if params.Path == "" {
		return createErrorResponse("collate_directory", fmt.Errorf("path is required"))
	}

	cfg := s.resolveConfig(params)
	seqCfg := cfg.ToSequenceConfig()

	opts := enumerate.Options{
		Root:           params.Path,
		Include:        cfg.Include,
		Exclude:        cfg.Exclude,
		FollowSymlinks: cfg.Enumerate.FollowSymlinks,
	}
	if cfg.Enumerate.RespectGitignore {
		gp := config.NewGitignoreParser()
		if err := gp.LoadGitignore(params.Path); err == nil {
			opts.Gitignore = gp
		}
	}

	fc, err := enumerate.Collate(opts, seqCfg)
	if err != nil {
		return createErrorResponse("collate_directory", err)
	}
	return createJSONResponse(present.ToFolderJSON(fc))
}

// resolveConfig layers call parameters over the server's configuration.
// Only the options a call sets are overridden; the rest keep the server's
// values. Include replaces the configured list, exclude extends it.
func (s *Server) resolveConfig(params CollateParams) *config.Config {
	cfg := *s.cfg
	if params.SplitStrategy != "" {
		cfg.Collate.SplitStrategy = params.SplitStrategy
	}
	if params.MergePadding != nil {
		cfg.Collate.MergePadding = *params.MergePadding
	}
	if params.Pack != nil {
		cfg.Collate.Pack = *params.Pack
	}
	if params.BakeSingleton != nil {
		cfg.Collate.BakeSingleton = *params.BakeSingleton
	}
	if params.Sort != nil {
		cfg.Collate.Sort = *params.Sort
	}
	if len(params.Include) > 0 {
		cfg.Include = params.Include
	}
	if len(params.Exclude) > 0 {
		cfg.Exclude = append(append([]string(nil), cfg.Exclude...), params.Exclude...)
	}
	return &cfg
}

func (s *Server) handleVersion(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return createJSONResponse(map[string]interface{}{
		"name":    "fseq-mcp-server",
		"version": version.Version,
	})
}

// Start serves MCP over stdio until ctx is cancelled or the client hangs up.
func (s *Server) Start(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
