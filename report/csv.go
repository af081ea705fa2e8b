// Package report renders a finished simulation for humans and downstream tools:
// console summary, per-step CSV series and a live websocket feed.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"market-maker-sim/sim"
)

// 价格与盈亏统一保留的小数位
const places = 6

// fixed 定点输出；NaN/Inf 无法转为 decimal，直接按浮点格式输出。
func fixed(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', places, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// WriteSeriesCSV 写出逐步序列：step,price,pnl。
func WriteSeriesCSV(w io.Writer, rec *sim.Record) error {
	if rec == nil {
		return fmt.Errorf("no record")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "price", "pnl"}); err != nil {
		return err
	}
	for i, p := range rec.Points() {
		if err := cw.Write([]string{strconv.Itoa(i), fixed(p.Price), fixed(p.PnL)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesFile 写到文件路径。
func WriteSeriesFile(path string, rec *sim.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := WriteSeriesCSV(f, rec); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
