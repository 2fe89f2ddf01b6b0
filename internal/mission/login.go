package mission

import "time"

// rewardMinutes is the income-minutes granted per streak day, capped at a
// week.
var rewardMinutes = [...]int{2, 3, 4, 5, 7, 9, 12}

// LoginReward is the outcome of a daily login check.
type LoginReward struct {
	Granted   bool
	Currency  float64
	StreakDay int
}

// Login tracks the consecutive-day login streak.
type Login struct {
	lastDay int
	streak  int
}

// NewLogin restores the streak from persisted values.
func NewLogin(lastDay, streak int) *Login {
	if streak < 0 {
		streak = 0
	}
	return &Login{lastDay: lastDay, streak: streak}
}

// TryClaim grants the once-per-UTC-day login bonus. Logging in on the day
// after the last claim extends the streak; any gap resets it to day one. The
// reward is a few minutes of current income, growing with the streak.
func (l *Login) TryClaim(now time.Time, incomePerSec float64) LoginReward {
	today := DayStamp(now)
	if l.lastDay == today {
		return LoginReward{}
	}
	if l.lastDay == DayStamp(now.AddDate(0, 0, -1)) {
		l.streak++
		if l.streak > len(rewardMinutes) {
			l.streak = len(rewardMinutes)
		}
	} else {
		l.streak = 1
	}
	l.lastDay = today

	idx := l.streak - 1
	if idx < 0 {
		idx = 0
	}
	reward := incomePerSec * float64(rewardMinutes[idx]) * 60
	if reward < 0 {
		reward = 0
	}
	return LoginReward{Granted: true, Currency: reward, StreakDay: l.streak}
}

// LastDay reports the day stamp of the most recent claim.
func (l *Login) LastDay() int { return l.lastDay }

// Streak reports the current consecutive-day count.
func (l *Login) Streak() int { return l.streak }
