// Package network implements feed forward neural networks built on
// Gorgonia computational graphs
package network

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
	"gonum.org/v1/gonum/mat"
)

// MLP implements a multi-layered perceptron that maps feature vectors
// to one linear output per predicted value. Every hidden layer uses a
// bias unit and its own activation. The network is trained to minimize
// the mean squared error between its predictions and given targets.
//
// Training happens on a graph with a fixed batch size. Predictions on
// other numbers of rows are computed on separate graphs, created once
// per row count, whose parameters are copied from the training graph
// before each forward pass.
//
// MLP is not safe for concurrent use.
type MLP struct {
	features  int
	outputs   int
	batchSize int

	g       *G.ExprGraph
	layers  []*fcLayer
	input   *G.Node
	target  *G.Node
	loss    *G.Node
	lossVal G.Value
	vm      G.VM
	solver  G.Solver
	model   []G.ValueGrad

	predictors map[int]*predictor
}

// predictor is a forward-only copy of the MLP for a specific number of
// input rows
type predictor struct {
	layers  []*fcLayer
	input   *G.Node
	predVal G.Value
	vm      G.VM
}

// NewMLP creates and returns a new multi-layered perceptron with
// len(hiddenSizes) hidden layers followed by a linear output layer of
// size outputs. For index i, hiddenSizes[i] is the number of units in
// hidden layer i and activations[i] is its activation function. The
// parameter init determines the weight initialization scheme; biases
// are initialized to 0. The solver adjusts the weights when Fit is
// called, which must be with batches of size batchSize.
func NewMLP(features, outputs, batchSize int, hiddenSizes []int,
	activations []*Activation, init G.InitWFn,
	solver G.Solver) (*MLP, error) {
	if len(hiddenSizes) != len(activations) {
		msg := "newMLP: invalid number of activations\n\twant(%d)" +
			"\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(activations))
	}
	if features < 1 || outputs < 1 || batchSize < 1 {
		return nil, fmt.Errorf("newMLP: features, outputs, and batch size " +
			"must be positive")
	}
	for _, size := range hiddenSizes {
		if size < 1 {
			return nil, fmt.Errorf("newMLP: hidden layers must have at " +
				"least one unit")
		}
	}

	g := G.NewGraph()
	input := G.NewMatrix(g, tensor.Float64, G.WithShape(batchSize, features),
		G.WithName("input"), G.WithInit(G.Zeroes()))
	target := G.NewMatrix(g, tensor.Float64, G.WithShape(batchSize, outputs),
		G.WithName("target"), G.WithInit(G.Zeroes()))

	// A final linear layer produces one output per predicted value
	sizes := append(append([]int{}, hiddenSizes...), outputs)
	acts := append(append([]*Activation{}, activations...), Identity())

	layers := make([]*fcLayer, len(sizes))
	in := features
	for i, size := range sizes {
		layers[i] = newFCLayer(g, in, size, i, init, acts[i])
		in = size
	}

	pred, err := fwd(layers, input)
	if err != nil {
		return nil, fmt.Errorf("newMLP: could not compute forward pass: %w",
			err)
	}

	loss, err := mseLoss(pred, target)
	if err != nil {
		return nil, fmt.Errorf("newMLP: could not compute loss: %w", err)
	}

	net := &MLP{
		features:   features,
		outputs:    outputs,
		batchSize:  batchSize,
		g:          g,
		layers:     layers,
		input:      input,
		target:     target,
		loss:       loss,
		solver:     solver,
		predictors: make(map[int]*predictor),
	}
	G.Read(loss, &net.lossVal)

	learnables := net.learnables()
	if _, err := G.Grad(loss, learnables...); err != nil {
		return nil, fmt.Errorf("newMLP: could not compute gradient: %w", err)
	}

	net.model = make([]G.ValueGrad, 0, len(learnables))
	for _, node := range learnables {
		net.model = append(net.model, node)
	}
	net.vm = G.NewTapeMachine(g, G.BindDualValues(learnables...))

	return net, nil
}

// fwd adds the forward pass of layers on input to the graph of input
func fwd(layers []*fcLayer, input *G.Node) (*G.Node, error) {
	pred := input
	var err error
	for i, l := range layers {
		if pred, err = l.fwd(pred); err != nil {
			msg := "fwd: could not compute forward pass of layer %v: %w"
			return nil, fmt.Errorf(msg, i, err)
		}
	}
	return pred, nil
}

// mseLoss adds the mean squared error between pred and target over all
// elements to the graph
func mseLoss(pred, target *G.Node) (*G.Node, error) {
	diff, err := G.Sub(pred, target)
	if err != nil {
		return nil, err
	}
	sq, err := G.Square(diff)
	if err != nil {
		return nil, err
	}
	return G.Mean(sq)
}

// Features returns the number of features in a single input vector
func (m *MLP) Features() int {
	return m.features
}

// Outputs returns the number of values predicted for each input
func (m *MLP) Outputs() int {
	return m.outputs
}

// BatchSize returns the batch size that Fit requires
func (m *MLP) BatchSize() int {
	return m.batchSize
}

// Loss returns the training loss of the most recent batch given to Fit
func (m *MLP) Loss() float64 {
	if m.lossVal == nil {
		return 0
	}
	switch v := m.lossVal.Data().(type) {
	case float64:
		return v
	case []float64:
		return v[0]
	}
	return 0
}

// learnables returns the parameters of the training graph in layer
// order, with each layer's weights followed by its bias
func (m *MLP) learnables() G.Nodes {
	return layerLearnables(m.layers)
}

func layerLearnables(layers []*fcLayer) G.Nodes {
	learnables := make(G.Nodes, 0, 2*len(layers))
	for _, l := range layers {
		learnables = append(learnables, l.learnables()...)
	}
	return learnables
}

// Predict returns the network's predictions for each row of states as
// a matrix with one row per input row and Outputs() columns
func (m *MLP) Predict(states *mat.Dense) (*mat.Dense, error) {
	rows, cols := states.Dims()
	if cols != m.features {
		return nil, fmt.Errorf("predict: invalid number of features"+
			"\n\twant(%v)\n\thave(%v)", m.features, cols)
	}

	p, err := m.predictorFor(rows)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	copyValues(layerLearnables(p.layers), m.learnables())

	inputTensor := tensor.New(
		tensor.WithBacking(denseData(states)),
		tensor.WithShape(rows, cols),
	)
	if err := G.Let(p.input, inputTensor); err != nil {
		return nil, fmt.Errorf("predict: could not set input: %w", err)
	}

	defer p.vm.Reset()
	if err := p.vm.RunAll(); err != nil {
		return nil, fmt.Errorf("predict: could not run forward pass: %w", err)
	}

	out := p.predVal.Data().([]float64)
	return mat.NewDense(rows, m.outputs, append([]float64(nil), out...)), nil
}

// predictorFor returns the forward-only graph for rows input rows,
// creating it if needed
func (m *MLP) predictorFor(rows int) (*predictor, error) {
	if p, ok := m.predictors[rows]; ok {
		return p, nil
	}
	if rows < 1 {
		return nil, fmt.Errorf("cannot predict on %v rows", rows)
	}

	g := G.NewGraph()
	input := G.NewMatrix(g, tensor.Float64, G.WithShape(rows, m.features),
		G.WithName("input"), G.WithInit(G.Zeroes()))

	layers := make([]*fcLayer, len(m.layers))
	for i, l := range m.layers {
		layers[i] = l.cloneTo(g)
	}

	pred, err := fwd(layers, input)
	if err != nil {
		return nil, err
	}

	p := &predictor{layers: layers, input: input}
	G.Read(pred, &p.predVal)
	p.vm = G.NewTapeMachine(g)

	m.predictors[rows] = p
	return p, nil
}

// Fit adjusts the network's weights to reduce the mean squared error
// between its predictions on states and targets. The data is split
// into consecutive batches of batchSize rows, and one solver step is
// taken per batch for each of epochs passes through the data.
func (m *MLP) Fit(states, targets *mat.Dense, batchSize, epochs int) error {
	rows, cols := states.Dims()
	tRows, tCols := targets.Dims()
	if cols != m.features {
		return fmt.Errorf("fit: invalid number of features\n\twant(%v)"+
			"\n\thave(%v)", m.features, cols)
	}
	if tCols != m.outputs || tRows != rows {
		return fmt.Errorf("fit: targets of shape (%v, %v) do not match "+
			"predictions of shape (%v, %v)", tRows, tCols, rows, m.outputs)
	}
	if batchSize != m.batchSize {
		return fmt.Errorf("fit: network trains on batches of %v but got %v",
			m.batchSize, batchSize)
	}
	if rows%batchSize != 0 {
		return fmt.Errorf("fit: %v rows cannot be split into batches of %v",
			rows, batchSize)
	}

	stateData := denseData(states)
	targetData := denseData(targets)
	for epoch := 0; epoch < epochs; epoch++ {
		for start := 0; start < rows; start += batchSize {
			end := start + batchSize
			err := m.step(stateData[start*cols:end*cols],
				targetData[start*m.outputs:end*m.outputs])
			if err != nil {
				return fmt.Errorf("fit: %w", err)
			}
		}
	}
	return nil
}

// step takes a single solver step on one batch of data
func (m *MLP) step(states, targets []float64) error {
	inputTensor := tensor.New(
		tensor.WithBacking(states),
		tensor.WithShape(m.batchSize, m.features),
	)
	if err := G.Let(m.input, inputTensor); err != nil {
		return fmt.Errorf("step: could not set input: %w", err)
	}

	targetTensor := tensor.New(
		tensor.WithBacking(targets),
		tensor.WithShape(m.batchSize, m.outputs),
	)
	if err := G.Let(m.target, targetTensor); err != nil {
		return fmt.Errorf("step: could not set target: %w", err)
	}

	defer m.vm.Reset()
	if err := m.vm.RunAll(); err != nil {
		return fmt.Errorf("step: could not run graph: %w", err)
	}
	if err := m.solver.Step(m.model); err != nil {
		return fmt.Errorf("step: could not step solver: %w", err)
	}
	return nil
}

// Parameters returns a copy of the network's parameters in layer
// order, with each layer's weights (row-major) followed by its bias
func (m *MLP) Parameters() [][]float64 {
	learnables := m.learnables()
	params := make([][]float64, len(learnables))
	for i, node := range learnables {
		params[i] = append([]float64(nil), node.Value().Data().([]float64)...)
	}
	return params
}

// SetParameters sets the network's parameters, which must be laid out
// as returned by Parameters
func (m *MLP) SetParameters(params [][]float64) error {
	learnables := m.learnables()
	if len(params) != len(learnables) {
		return fmt.Errorf("setParameters: invalid number of parameter "+
			"tensors\n\twant(%v)\n\thave(%v)", len(learnables), len(params))
	}
	for i, node := range learnables {
		if len(params[i]) != node.Shape().TotalSize() {
			return fmt.Errorf("setParameters: invalid size for %v"+
				"\n\twant(%v)\n\thave(%v)", node.Name(),
				node.Shape().TotalSize(), len(params[i]))
		}
	}

	for i, node := range learnables {
		copy(node.Value().Data().([]float64), params[i])
	}
	return nil
}

// copyValues copies the values of the src nodes into the dst nodes
// in place
func copyValues(dst, src G.Nodes) {
	for i := range dst {
		copy(dst[i].Value().Data().([]float64),
			src[i].Value().Data().([]float64))
	}
}

// denseData returns a row-major copy of the data in m
func denseData(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		data = append(data, m.RawRowView(i)...)
	}
	return data
}
