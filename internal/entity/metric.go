package entity

import "time"

const (
	MetricTypeCPU    = "cpu"
	MetricTypeMemory = "memory"
	MetricTypeDisk   = "disk"
)

// ValidMetricType reports whether t is one of cpu/memory/disk.
func ValidMetricType(t string) bool {
	switch t {
	case MetricTypeCPU, MetricTypeMemory, MetricTypeDisk:
		return true
	default:
		return false
	}
}

// DbSystemMetric is one reading written by the external collector. The table
// is append-only from the console's perspective.
type DbSystemMetric struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	MetricType string    `gorm:"column:metric_type;type:varchar(50);index;not null" json:"metric_type"`
	Value      float64   `gorm:"column:value;not null" json:"value"`
	Timestamp  time.Time `gorm:"column:timestamp;index;not null" json:"timestamp"`
}

// TableName overrides default pluralised name.
func (DbSystemMetric) TableName() string {
	return "system_metrics"
}

// MetricsSnapshot carries the most recent reading per metric type. A type with
// no recorded rows is an explicit null, never a zero value.
type MetricsSnapshot struct {
	CPU    *DbSystemMetric `json:"cpu"`
	Memory *DbSystemMetric `json:"memory"`
	Disk   *DbSystemMetric `json:"disk"`
}
