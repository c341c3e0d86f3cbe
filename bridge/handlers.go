package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/tsawler/pagecap/capture"
	"github.com/tsawler/pagecap/format"
	"github.com/tsawler/pagecap/internal/config"
	"github.com/tsawler/pagecap/model"
	"github.com/tsawler/pagecap/pages"
)

// Standard action names.
const (
	ActionCapture     = "capture"
	ActionPageLayout  = "pageLayout"
	ActionCollides    = "collides"
	ActionIntersect   = "intersect"
	ActionCommon      = "common"
	ActionViewerState = "viewerState"
)

// StateReporter is implemented by providers that can describe their viewer
// state: scale, page count and the space around pages.
type StateReporter interface {
	State() pages.State
}

// CapturePayload is the payload of ActionCapture.
type CapturePayload struct {
	Selection  model.Box `json:"selection"`
	Ratio      float64   `json:"ratio,omitempty"`
	Background string    `json:"background,omitempty"` // colour name or #rrggbb
	Format     string    `json:"format,omitempty"`     // png by default
}

// CaptureResult is the result of ActionCapture. Data is base64 in JSON and
// is empty when the selection has no area.
type CaptureResult struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MIMEType string `json:"mimeType"`
	Pages    []int  `json:"pages"`
	Data     []byte `json:"data"`
}

// PairPayload carries two boxes for the binary geometry actions.
type PairPayload struct {
	A model.Box `json:"a"`
	B model.Box `json:"b"`
}

// IntersectResult reports an intersection. Box is nil when the boxes do not
// overlap with positive area.
type IntersectResult struct {
	Box *model.Box `json:"box"`
}

// CommonResult reports the bounding box of a set. Box is nil for an empty
// set.
type CommonResult struct {
	Box *model.Box `json:"box"`
}

// Handlers returns the standard action table serving captures and layout
// queries against p. ActionViewerState is included when p implements
// StateReporter.
func Handlers(engine *capture.Engine, p capture.Provider) map[string]Handler {
	table := map[string]Handler{
		ActionCapture:    captureHandler(engine, p),
		ActionPageLayout: pageLayoutHandler(p),
		ActionCollides:   collidesHandler,
		ActionIntersect:  intersectHandler,
		ActionCommon:     commonHandler,
	}
	if sr, ok := p.(StateReporter); ok {
		table[ActionViewerState] = viewerStateHandler(sr)
	}
	return table
}

func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return fmt.Errorf("bridge: missing payload")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("bridge: invalid payload: %w", err)
	}
	return nil
}

func captureHandler(engine *capture.Engine, p capture.Provider) Handler {
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req CapturePayload
		if err := decode(payload, &req); err != nil {
			return nil, err
		}

		f := format.PNG
		if req.Format != "" {
			if f = format.Parse(req.Format); f == format.Unknown {
				return nil, fmt.Errorf("bridge: %w: %q", format.ErrUnsupported, req.Format)
			}
		}

		sel := capture.Selection{Box: req.Selection, Ratio: req.Ratio}
		if req.Background != "" {
			c, err := config.ParseColor(req.Background)
			if err != nil {
				return nil, err
			}
			sel.Background = c
		}

		out, err := engine.Capture(ctx, p, sel)
		if err != nil {
			return nil, err
		}

		b := out.Image.Bounds()
		res := CaptureResult{
			Width:    b.Dx(),
			Height:   b.Dy(),
			MIMEType: f.MIMEType(),
			Pages:    append([]int{}, out.Pages...),
		}
		if !out.HasPixels() {
			return res, nil
		}

		var buf bytes.Buffer
		if err := out.Encode(&buf, f, nil); err != nil {
			return nil, err
		}
		res.Data = buf.Bytes()
		return res, nil
	}
}

func pageLayoutHandler(p capture.Provider) Handler {
	return func(ctx context.Context, _ json.RawMessage) (any, error) {
		boxes := make([]model.Box, p.PageCount())
		for i := range boxes {
			b, err := p.PageBox(i)
			if err != nil {
				return nil, err
			}
			boxes[i] = b
		}
		return boxes, nil
	}
}

func viewerStateHandler(sr StateReporter) Handler {
	return func(context.Context, json.RawMessage) (any, error) {
		return sr.State(), nil
	}
}

func collidesHandler(_ context.Context, payload json.RawMessage) (any, error) {
	var req PairPayload
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return model.Collides(req.A, req.B), nil
}

func intersectHandler(_ context.Context, payload json.RawMessage) (any, error) {
	var req PairPayload
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	if box, ok := model.Intersect(req.A, req.B); ok {
		return IntersectResult{Box: &box}, nil
	}
	return IntersectResult{}, nil
}

func commonHandler(_ context.Context, payload json.RawMessage) (any, error) {
	var boxes []model.Box
	if err := decode(payload, &boxes); err != nil {
		return nil, err
	}
	if len(boxes) == 0 {
		return CommonResult{}, nil
	}
	box := model.Common(boxes)
	return CommonResult{Box: &box}, nil
}
