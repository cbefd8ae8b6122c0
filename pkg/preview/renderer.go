package preview

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Canvas dimensions of the rendered preview image.
const (
	CanvasWidth  = 1200
	CanvasHeight = 630
)

// Renderer rasterizes a descriptor into a PNG payload. Implementations must
// be deterministic: identical descriptors produce identical bytes.
type Renderer interface {
	Render(ctx context.Context, d Descriptor) ([]byte, error)
}

// CardRenderer draws the fixed card template: a tinted frame around a white
// card, with header and headline bands standing in for the avatar/caption and
// title regions. The tint is derived from the descriptor so two documents get
// distinguishable previews.
type CardRenderer struct{}

func NewCardRenderer() *CardRenderer {
	return &CardRenderer{}
}

const framePadding = 52

func (r *CardRenderer) Render(_ context.Context, d Descriptor) ([]byte, error) {
	canvas := imaging.New(CanvasWidth, CanvasHeight, tint(d))

	card := imaging.New(CanvasWidth-2*framePadding, CanvasHeight-2*framePadding, color.White)
	canvas = imaging.Paste(canvas, card, image.Pt(framePadding, framePadding))

	header := imaging.New(420, 80, color.NRGBA{R: 0xe5, G: 0xe5, B: 0xe5, A: 0xff})
	canvas = imaging.Paste(canvas, header, image.Pt(2*framePadding, 2*framePadding))

	headline := imaging.New(CanvasWidth-4*framePadding, 96, color.NRGBA{R: 0x17, G: 0x17, B: 0x17, A: 0xff})
	canvas = imaging.Paste(canvas, headline, image.Pt(2*framePadding, CanvasHeight-2*framePadding-96))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview image: %w", err)
	}

	return buf.Bytes(), nil
}

func tint(d Descriptor) color.NRGBA {
	h := fnv.New32a()
	h.Write([]byte(d.Encode()))
	sum := h.Sum32()

	return color.NRGBA{
		R: uint8(0x35 + sum%0x60),
		G: uint8(0x24 + (sum>>8)%0x60),
		B: uint8(0x4f + (sum>>16)%0x60),
		A: 0xff,
	}
}
