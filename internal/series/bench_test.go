package series

import "testing"

func BenchmarkPush(b *testing.B) {
	s, _ := New(WithDimension(2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t := float64(i+1) * 0.001
		_ = s.Push(t, t, -t)
		if i%64 == 0 {
			s.Flush(t - 0.01)
		}
	}
}

func BenchmarkCurve(b *testing.B) {
	s, _ := New(WithDimension(4))
	for i := 1; i <= 1000; i++ {
		t := float64(i)
		_ = s.Push(t, t, t*2, t*3, t*4)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Curve(float64(i%1000) + 0.5)
	}
}

func BenchmarkDCurve(b *testing.B) {
	s, _ := New(WithDimension(4))
	for i := 1; i <= 1000; i++ {
		t := float64(i)
		_ = s.Push(t, t, t*2, t*3, t*4)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.DCurve(float64(i%1000) + 0.5)
	}
}
