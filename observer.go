package jpegenc

// Component identifies an encoded color component.
type Component int

const (
	ComponentY Component = iota
	ComponentCb
	ComponentCr
)

func (c Component) String() string {
	switch c {
	case ComponentY:
		return "Y"
	case ComponentCb:
		return "Cb"
	case ComponentCr:
		return "Cr"
	default:
		return "unknown"
	}
}

// BlockDCTInfo is delivered to observers after each block transform.
type BlockDCTInfo struct {
	Component Component
	BlockX    int
	BlockY    int
	Coeffs    Block[float32]
}

// PipelineObserver receives synchronous notifications at pipeline
// checkpoints during a single encode call. Implementations must not
// retain the encoder and must return promptly; the pipeline is
// sequential and blocks on every callback.
type PipelineObserver interface {
	// OnBlockDCT is called once per 8x8 block right after the forward
	// transform, before quantization.
	OnBlockDCT(info BlockDCTInfo)

	// OnEntropyStage is called with the Shannon entropy (bits per byte)
	// of a named stage buffer, e.g. "input" and "scan".
	OnEntropyStage(stage string, entropy float64)
}

func (e *encoder) notifyBlockDCT(comp Component, bx, by int, coeffs *Block[float32]) {
	if len(e.observers) == 0 {
		return
	}

	info := BlockDCTInfo{Component: comp, BlockX: bx, BlockY: by, Coeffs: *coeffs}
	for _, o := range e.observers {
		o.OnBlockDCT(info)
	}
}

func (e *encoder) notifyEntropyStage(stage string, entropy float64) {
	for _, o := range e.observers {
		o.OnEntropyStage(stage, entropy)
	}
}
