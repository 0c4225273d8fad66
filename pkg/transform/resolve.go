package transform

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/umputun/feedmaker/pkg/fetch"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// Fetcher downloads binary assets for ImageCache
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts fetch.Options) (fetch.Result, error)
}

// Env carries what a stage needs to know about the feed it runs for
type Env struct {
	FeedDir        string
	FeedName       string
	PageURL        string // list url for collection stages, item link for extraction stages
	LinkArg        bool   // append PageURL as the last argument of subprocess scripts
	Fetcher        Fetcher
	FetchOptions   fetch.Options
	ImageDir       string // <public>/img
	ImageURLPrefix string
}

// builder makes an in-process transform for a builtin script name
type builder func(env Env, args []string) Transform

var builtins = map[string]builder{
	"capture_item_link_title": newLinkCaptureBuilder,
	"download_image":          newImageCacheBuilder,
}

func newLinkCaptureBuilder(env Env, _ []string) Transform {
	return &LinkCapture{BaseURL: env.PageURL}
}

func newImageCacheBuilder(env Env, _ []string) Transform {
	return &ImageCache{
		Fetcher:   env.Fetcher,
		Options:   env.FetchOptions,
		FeedName:  env.FeedName,
		ImageDir:  env.ImageDir,
		URLPrefix: env.ImageURLPrefix,
		PageURL:   env.PageURL,
	}
}

// IsBuiltin reports whether the script line refers to an in-process transform
func IsBuiltin(script string) bool {
	fields := strings.Fields(script)
	if len(fields) == 0 {
		return false
	}
	_, ok := builtins[strings.TrimSuffix(fields[0], ".py")]
	return ok
}

// Resolve makes a transform for the script line. Bare builtin names are served in-process.
// Paths starting with "./" or "../" are relative to the feed directory, absolute paths are used
// as is, anything else is looked up in PATH. Arguments are separated by spaces.
func Resolve(script string, env Env) (Transform, error) {
	fields := strings.Fields(script)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty script")
	}
	name, args := fields[0], fields[1:]

	if b, ok := builtins[strings.TrimSuffix(name, ".py")]; ok {
		return b(env, args), nil
	}

	var path string
	switch {
	case strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../"):
		p, err := filepath.Abs(filepath.Join(env.FeedDir, name))
		if err != nil {
			return nil, fmt.Errorf("resolve script path %s: %w", name, err)
		}
		path = p
	case filepath.IsAbs(name):
		path = name
	default:
		p, err := exec.LookPath(name)
		if err != nil {
			return nil, fmt.Errorf("find script %s: %w", name, err)
		}
		path = p
	}

	if env.LinkArg && env.PageURL != "" {
		args = append(args, env.PageURL)
	}
	return Command{Path: path, Args: args, Dir: env.FeedDir}, nil
}

// ResolveChain resolves every script line in order
func ResolveChain(scripts []string, env Env) (Chain, error) {
	res := make(Chain, 0, len(scripts))
	for _, s := range scripts {
		if strings.TrimSpace(s) == "" {
			continue
		}
		t, err := Resolve(s, env)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, nil
}
