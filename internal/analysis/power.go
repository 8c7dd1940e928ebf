package analysis

import "math"

// NPWindow is the rolling window, in samples, used for normalized power
const NPWindow = 30

const secondsPerHour = 3600.0

// NormalizedPower smooths the samples with a 30-sample trailing rolling mean,
// raises each full-window mean to the 4th power, averages them and takes the
// 4th root. Fewer than NPWindow samples fall back to the plain mean.
func NormalizedPower(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	if len(samples) < NPWindow {
		return Mean(samples)
	}

	sum := 0.0
	for i := 0; i < NPWindow; i++ {
		sum += samples[i]
	}

	fourthPowerTotal := 0.0
	count := 0
	for i := NPWindow - 1; i < len(samples); i++ {
		if i >= NPWindow {
			sum += samples[i] - samples[i-NPWindow]
		}
		rolling := sum / NPWindow
		fourthPowerTotal += math.Pow(rolling, 4)
		count++
	}
	return math.Pow(fourthPowerTotal/float64(count), 0.25)
}

// Mean returns the arithmetic mean, or 0 for no samples
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range samples {
		total += v
	}
	return total / float64(len(samples))
}

// IntensityFactor is normalized power relative to threshold power
func IntensityFactor(np float64, ftp int) float64 {
	if ftp <= 0 {
		return 0
	}
	return np / float64(ftp)
}

// StressScore is the normalized-power training stress score, truncated:
// duration * NP * IF / (FTP * 3600) * 100
func StressScore(durationSeconds int, np, intensity float64, ftp int) int {
	if ftp <= 0 {
		return 0
	}
	score := float64(durationSeconds) * np * intensity / (float64(ftp) * secondsPerHour) * 100
	return truncateScore(score)
}

// LegacyStressScore is the older mean-power approximation, truncated:
// duration * meanPower / (FTP * 3600) * 100
func LegacyStressScore(durationSeconds int, meanPower float64, ftp int) int {
	if ftp <= 0 {
		return 0
	}
	score := float64(durationSeconds) * meanPower / (float64(ftp) * secondsPerHour) * 100
	return truncateScore(score)
}

func truncateScore(score float64) int {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	return int(math.Floor(score))
}
