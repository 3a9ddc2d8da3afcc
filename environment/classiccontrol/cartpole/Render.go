package cartpole

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

const (
	ScreenWidth  int     = 600
	ScreenHeight int     = 400
	trackY       float64 = 300
	cartWidth    float64 = 50
	cartHeight   float64 = 30
	poleWidth    float64 = 10
)

// Render draws the current state of the environment to a PNG image at
// filename
func (c *Cartpole) Render(filename string) error {
	worldWidth := 2 * FailPosition
	scale := float64(ScreenWidth) / worldWidth
	poleLen := scale * 2 * c.halfPoleLength

	state := c.lastStep.Observation
	x, th := state.AtVec(0), state.AtVec(2)

	dc := gg.NewContext(ScreenWidth, ScreenHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Track
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(0, trackY, float64(ScreenWidth), trackY)
	dc.Stroke()

	// Cart
	cartX := x*scale + float64(ScreenWidth)/2
	dc.DrawRectangle(cartX-cartWidth/2, trackY-cartHeight/2, cartWidth,
		cartHeight)
	dc.Fill()

	// Pole, measured clockwise from vertical
	axleY := trackY - cartHeight/4
	tipX := cartX + poleLen*math.Sin(th)
	tipY := axleY - poleLen*math.Cos(th)
	dc.SetRGB(0.8, 0.6, 0.4)
	dc.SetLineWidth(poleWidth)
	dc.DrawLine(cartX, axleY, tipX, tipY)
	dc.Stroke()

	// Axle
	dc.SetRGB(0.5, 0.5, 0.8)
	dc.DrawCircle(cartX, axleY, poleWidth/2)
	dc.Fill()

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("render: could not save frame: %w", err)
	}
	return nil
}
