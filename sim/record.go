package sim

// Point 单步记录：成交后价格与按该价格盯市的 PnL。
type Point struct {
	Price float64 `json:"price"`
	PnL   float64 `json:"pnl"`
}

// Record 只追加的 (price, pnl) 序列，运行结束后只读。
type Record struct {
	points []Point
}

func newRecord(capacity int) *Record {
	return &Record{points: make([]Point, 0, capacity)}
}

func (r *Record) append(p Point) { r.points = append(r.points, p) }

func (r *Record) Len() int { return len(r.points) }

// At 返回第 i 步记录。
func (r *Record) At(i int) Point { return r.points[i] }

// Points 返回拷贝，调用方修改不影响记录。
func (r *Record) Points() []Point {
	out := make([]Point, len(r.points))
	copy(out, r.points)
	return out
}

func (r *Record) Prices() []float64 {
	out := make([]float64, len(r.points))
	for i, p := range r.points {
		out[i] = p.Price
	}
	return out
}

func (r *Record) PnLs() []float64 {
	out := make([]float64, len(r.points))
	for i, p := range r.points {
		out[i] = p.PnL
	}
	return out
}

// Last 最后一步记录；空记录返回零值。
func (r *Record) Last() (Point, bool) {
	if len(r.points) == 0 {
		return Point{}, false
	}
	return r.points[len(r.points)-1], true
}
