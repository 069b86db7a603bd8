package writer

// MemWriter captures container bytes in memory.
type MemWriter struct {
	Buf []byte
}

// WriteContainer stores a copy of buf.
func (w *MemWriter) WriteContainer(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	return nil
}
