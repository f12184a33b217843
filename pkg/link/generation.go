package link

// GenerationID identifies one stylesheet-load request. The zero value means
// no request has been issued yet; each initiation produces the next id, so
// ids are strictly increasing per element and never reused.
type GenerationID uint32

// Next returns the following generation id.
func (g GenerationID) Next() GenerationID {
	return g + 1
}
