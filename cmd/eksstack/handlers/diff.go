package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/plan"
	"github.com/imamik/eksstack/internal/platform/s3"
	"github.com/imamik/eksstack/internal/render"
)

// Diff compares the synthesized stack with a previous document. The previous
// document is read from againstPath, or from the latest published document
// when againstPath is empty and a bucket is configured. Without either, every
// resource is reported as a create.
func Diff(ctx context.Context, configPath, againstPath string, remote RemoteOptions) error {
	cfg, state, err := synthesize(ctx, configPath, 0, nil)
	if err != nil {
		return err
	}
	next, err := render.NewDocument(state.Graph)
	if err != nil {
		return err
	}

	previous, source, err := previousDocument(ctx, cfg, againstPath, remote.resolve(cfg))
	if err != nil {
		return err
	}

	changes := plan.Diff(previous, next)
	summary := plan.Summarize(changes)

	fmt.Fprintln(stdout, paint(titleStyle, "eksstack diff: "+cfg.StackName))
	fmt.Fprintln(stdout, paint(dimStyle, "  against "+source))
	for _, c := range changes {
		if c.Action == plan.ActionNoop {
			continue
		}
		fmt.Fprintln(stdout, "  "+paint(actionStyle(c.Action), c.String()))
	}
	if summary.Empty() {
		fmt.Fprintln(stdout, paint(okStyle, "  ✓ no changes"))
	}
	fmt.Fprintln(stdout, summary.String())
	return nil
}

func previousDocument(ctx context.Context, cfg *config.Config, againstPath string, remote RemoteOptions) (*render.Document, string, error) {
	var (
		data   []byte
		source string
		err    error
	)
	switch {
	case againstPath != "":
		data, err = readFile(againstPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read previous document: %w", err)
		}
		source = againstPath
	case remote.Bucket != "":
		pub, err := remote.publisher(ctx)
		if err != nil {
			return nil, "", err
		}
		data, err = pub.Latest(ctx, cfg.StackName)
		if err != nil {
			return nil, "", err
		}
		source = "s3://" + remote.Bucket + "/" + pub.Key(cfg.StackName, s3.LatestName)
		if data == nil {
			return nil, source + " (not published yet)", nil
		}
	default:
		return nil, "empty stack", nil
	}

	doc, err := render.Load(data)
	if err != nil {
		return nil, "", err
	}
	return doc, source, nil
}
