package offline

import "time"

// Result describes the earnings granted for time away.
type Result struct {
	Earned        float64
	ElapsedSec    float64
	CappedSec     float64
	CapHit        bool
	EffectiveRate float64
}

// Calculate is a pure function of time away and the income rate at the
// moment the session resumes. Away time is capped and paid at a reduced
// rate; negative or zero elapsed time earns nothing.
func Calculate(lastOnline, now time.Time, incomePerSec float64, maxOfflineHours int, rate float64) Result {
	elapsed := now.Sub(lastOnline).Seconds()
	if elapsed <= 0 || incomePerSec <= 0 || rate <= 0 || maxOfflineHours <= 0 {
		return Result{ElapsedSec: maxFloat(elapsed, 0)}
	}
	capSec := float64(maxOfflineHours) * 3600
	capped := elapsed
	capHit := false
	if capped > capSec {
		capped = capSec
		capHit = true
	}
	return Result{
		Earned:        incomePerSec * capped * rate,
		ElapsedSec:    elapsed,
		CappedSec:     capped,
		CapHit:        capHit,
		EffectiveRate: rate,
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
