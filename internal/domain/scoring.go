package domain

// Breakdown itemises a duplicate score. All amounts are from the declaring side's point
// of view and non-negative; Total carries the North-South sign.
type Breakdown struct {
	TrickScore  int `json:"trick_score"`
	GameBonus   int `json:"game_bonus"` // game (300/500) or partscore (50)
	SlamBonus   int `json:"slam_bonus"`
	InsultBonus int `json:"insult_bonus"`
	Overtricks  int `json:"overtricks"`
	Undertricks int `json:"undertricks"`
	Total       int `json:"total"`
}

// Score returns the duplicate score of r on a board with vulnerability v, positive when
// North-South gain. Passed boards score zero.
func (r Result) Score(v Vulnerability) int {
	return r.Breakdown(v).Total
}

// Breakdown computes the score and its components.
func (r Result) Breakdown(v Vulnerability) Breakdown {
	if r.Passed {
		return Breakdown{}
	}

	side := r.Declarer.Side()
	vul := v.Vulnerable(side)

	var b Breakdown
	if r.Differential >= 0 {
		b = madeScore(r.Contract, r.Differential, vul)
		b.Total = side.Sign() * (b.TrickScore + b.GameBonus + b.SlamBonus + b.InsultBonus + b.Overtricks)
	} else {
		b.Undertricks = undertrickPenalty(r.Contract.Doubling, -r.Differential, vul)
		b.Total = -side.Sign() * b.Undertricks
	}
	return b
}

func madeScore(c Contract, overtricks int, vul bool) Breakdown {
	var b Breakdown
	b.TrickScore = c.Strain.TrickValue(c.Level) * c.Doubling.Multiplier()

	switch {
	case b.TrickScore < 100:
		b.GameBonus = 50
	case vul:
		b.GameBonus = 500
	default:
		b.GameBonus = 300
	}

	switch c.Level {
	case 6:
		b.SlamBonus = pick(vul, 750, 500)
	case 7:
		b.SlamBonus = pick(vul, 1500, 1250)
	}

	switch c.Doubling {
	case Doubled:
		b.InsultBonus = 50
		b.Overtricks = overtricks * pick(vul, 200, 100)
	case Redoubled:
		b.InsultBonus = 100
		b.Overtricks = overtricks * pick(vul, 400, 200)
	default:
		b.Overtricks = overtricks * c.Strain.OvertrickValue()
	}
	return b
}

// undertrickPenalty sums the penalty for going down the given number of tricks.
func undertrickPenalty(d Doubling, down int, vul bool) int {
	if d == Undoubled {
		return down * pick(vul, 100, 50)
	}
	first, rest := 100, 200
	if vul {
		first, rest = 200, 300
	}
	penalty := first + (down-1)*rest
	if d == Redoubled {
		penalty *= 2
	}
	return penalty
}

func pick(vul bool, vulnerable, notVulnerable int) int {
	if vul {
		return vulnerable
	}
	return notVulnerable
}
