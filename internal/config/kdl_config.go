package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

const (
	globalConfigName  = ".fseqrc.kdl"
	projectConfigName = ".fseq.kdl"
)

// loadKDLFile reads name from dir and parses it. A missing file is not an
// error: it returns (nil, nil) so Load can fall through to the next layer.
// Relative project roots in the file are resolved against rootDir.
func loadKDLFile(dir, name, rootDir string) (*Config, error) {
	kdlPath := filepath.Join(dir, name)
	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", kdlPath, err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kdlPath, err)
	}

	if cfg.Project.Root == "" {
		cfg.Project.Root = rootDir
	} else if !filepath.IsAbs(cfg.Project.Root) {
		cfg.Project.Root = filepath.Clean(filepath.Join(rootDir, cfg.Project.Root))
	}

	return cfg, nil
}

// parseKDL walks the KDL document and overlays recognized nodes onto the
// defaults. Unrecognized nodes are ignored so older binaries tolerate newer
// config files.
func parseKDL(content string) (*Config, error) {
	cfg := defaultConfig()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
				assignSimpleString(cn, "name", func(v string) { cfg.Project.Name = v })
			}
		case "collate":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "split_strategy":
					if s, ok := firstStringArg(cn); ok {
						cfg.Collate.SplitStrategy = s
					}
				case "merge_padding":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Collate.MergePadding = b
					}
				case "pack":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Collate.Pack = b
					}
				case "bake_singleton":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Collate.BakeSingleton = b
					}
				case "sort":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Collate.Sort = b
					}
				}
			}
		case "enumerate":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "respect_gitignore":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Enumerate.RespectGitignore = b
					}
				case "follow_symlinks":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Enumerate.FollowSymlinks = b
					}
				case "watch_debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Enumerate.WatchDebounceMs = v
					}
				}
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		}
	}

	return cfg, nil
}

// Helper functions leveraging the kdl-go document model.
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// Block format: exclude { "pattern" } stores each string as a child
	// node whose name is the string value.
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
