package network

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// fcLayer implements a fully connected layer of a feed forward neural
// network. Weights have shape (in, out) and the bias has shape (1, out)
// so that it can be broadcast along the batch dimension.
type fcLayer struct {
	weights *G.Node
	bias    *G.Node
	act     *Activation
}

// newFCLayer adds the parameters of a fully connected layer to g
func newFCLayer(g *G.ExprGraph, in, out, index int, init G.InitWFn,
	act *Activation) *fcLayer {
	weights := G.NewMatrix(
		g,
		tensor.Float64,
		G.WithShape(in, out),
		G.WithName(fmt.Sprintf("W%d", index)),
		G.WithInit(init),
	)
	bias := G.NewMatrix(
		g,
		tensor.Float64,
		G.WithShape(1, out),
		G.WithName(fmt.Sprintf("b%d", index)),
		G.WithInit(G.Zeroes()),
	)

	return &fcLayer{weights: weights, bias: bias, act: act}
}

// fwd adds the forward pass of the fcLayer to the computational graph
func (f *fcLayer) fwd(x *G.Node) (*G.Node, error) {
	x, err := G.Mul(x, f.weights)
	if err != nil {
		return nil, fmt.Errorf("fwd: could not multiply weights: %w", err)
	}

	// Broadcast the bias to all samples along the batch dimension
	x, err = G.BroadcastAdd(x, f.bias, nil, []byte{0})
	if err != nil {
		return nil, fmt.Errorf("fwd: could not add bias: %w", err)
	}

	if f.act == nil || f.act.IsIdentity() {
		return x, nil
	}
	return f.act.fwd(x)
}

// cloneTo adds zeroed parameters of the same shape as those of the
// fcLayer to graph g. The returned layer shares the fcLayer's
// activation.
func (f *fcLayer) cloneTo(g *G.ExprGraph) *fcLayer {
	weights := G.NewMatrix(
		g,
		tensor.Float64,
		G.WithShape(f.weights.Shape()...),
		G.WithName(f.weights.Name()),
		G.WithInit(G.Zeroes()),
	)
	bias := G.NewMatrix(
		g,
		tensor.Float64,
		G.WithShape(f.bias.Shape()...),
		G.WithName(f.bias.Name()),
		G.WithInit(G.Zeroes()),
	)

	return &fcLayer{weights: weights, bias: bias, act: f.act}
}

// learnables returns the parameters of the layer
func (f *fcLayer) learnables() G.Nodes {
	return G.Nodes{f.weights, f.bias}
}
