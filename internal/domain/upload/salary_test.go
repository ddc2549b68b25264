package upload

import "testing"

func TestParseSalary(t *testing.T) {
	tests := []struct {
		in       string
		min, max float64
		null     bool
	}{
		{in: "$80,000 - $100,000 per year", min: 80000, max: 100000},
		{in: "$50 per hour", min: 104000, max: 104000},
		{in: "5,000-6,000 / Month", min: 60000, max: 72000},
		{in: "  120000  ", min: 120000, max: 120000},
		{in: "$90k to $110k, 3 weeks PTO", min: 90, max: 110},
		{in: "", null: true},
		{in: "competitive", null: true},
		{in: "1.2.3", null: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseSalary(tt.in, nil)
			if tt.null {
				if got.SalaryMin != nil || got.SalaryMax != nil {
					t.Fatalf("ParseSalary(%q) = %v, %v; want nil bounds", tt.in, got.SalaryMin, got.SalaryMax)
				}
				return
			}
			if got.SalaryMin == nil || got.SalaryMax == nil {
				t.Fatalf("ParseSalary(%q) returned nil bounds", tt.in)
			}
			if *got.SalaryMin != tt.min || *got.SalaryMax != tt.max {
				t.Errorf("ParseSalary(%q) = %v-%v, want %v-%v", tt.in, *got.SalaryMin, *got.SalaryMax, tt.min, tt.max)
			}
		})
	}
}
