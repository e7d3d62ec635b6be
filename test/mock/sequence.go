package mock

type Sequence struct {
	HeightFunc func() uint64
}

func (s *Sequence) Height() uint64 {
	return s.HeightFunc()
}

func FixedHeight(height uint64) *Sequence {
	return &Sequence{
		HeightFunc: func() uint64 { return height },
	}
}
