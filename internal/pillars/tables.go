package pillars

import "github.com/selivandex/destiny-core/pkg/models"

// Hidden stems (jijanggan) per branch, primary stem first
var hiddenStems = [12][]models.Stem{
	{9},       // Ja   子: Gye
	{5, 9, 7}, // Chuk 丑: Gi, Gye, Sin
	{0, 2, 4}, // In   寅: Gap, Byeong, Mu
	{1},       // Myo  卯: Eul
	{4, 1, 9}, // Jin  辰: Mu, Eul, Gye
	{2, 4, 6}, // Sa   巳: Byeong, Mu, Gyeong
	{3, 5},    // O    午: Jeong, Gi
	{5, 3, 1}, // Mi   未: Gi, Jeong, Eul
	{6, 8, 4}, // Sin  申: Gyeong, Im, Mu
	{7},       // Yu   酉: Sin
	{4, 7, 3}, // Sul  戌: Mu, Sin, Jeong
	{8, 0},    // Hae  亥: Im, Gap
}

// HiddenStemsOf returns the hidden stems of a branch, primary first
func HiddenStemsOf(b models.Branch) []models.Stem {
	out := make([]models.Stem, len(hiddenStems[int(b)]))
	copy(out, hiddenStems[int(b)])
	return out
}

// SibsinOf classifies a stem against the day master. Pure index arithmetic
// over the generation cycle: element distance × polarity match.
func SibsinOf(dayMaster, other models.Stem) models.Sibsin {
	diff := (int(other.Element()) - int(dayMaster.Element()) + 5) % 5
	idx := diff * 2
	if dayMaster.Polarity() != other.Polarity() {
		idx++
	}
	return models.Sibsin(idx)
}

// jangsaeng (birth-stage) branch per stem; yang stems walk the cycle
// forward, yin stems backward
var jangsaengBranch = [10]models.Branch{
	11, // Gap    甲: Hae
	6,  // Eul    乙: O
	2,  // Byeong 丙: In
	9,  // Jeong  丁: Yu
	2,  // Mu     戊: In
	9,  // Gi     己: Yu
	5,  // Gyeong 庚: Sa
	0,  // Sin    辛: Ja
	8,  // Im     壬: Sin
	3,  // Gye    癸: Myo
}

// TwelveStageOf returns the life-stage of a stem over a branch
func TwelveStageOf(stem models.Stem, branch models.Branch) models.TwelveStage {
	start := int(jangsaengBranch[int(stem)])
	if stem.Polarity() == models.Yang {
		return models.TwelveStage((int(branch) - start + 12) % 12)
	}
	return models.TwelveStage((start - int(branch) + 12) % 12)
}

// Six-harmony pairs with their resulting element
var sixHarmonyPairs = []struct {
	a, b    models.Branch
	element models.Element
}{
	{0, 1, models.Earth},  // Ja-Chuk
	{2, 11, models.Wood},  // In-Hae
	{3, 10, models.Fire},  // Myo-Sul
	{4, 9, models.Metal},  // Jin-Yu
	{5, 8, models.Water},  // Sa-Sin
	{6, 7, models.Fire},   // O-Mi
}

// Three-harmony triads with their resulting element; any pair from a triad
// forms a half-combination
var threeHarmonyTriads = []struct {
	branches [3]models.Branch
	element  models.Element
}{
	{[3]models.Branch{8, 0, 4}, models.Water},  // Sin-Ja-Jin
	{[3]models.Branch{2, 6, 10}, models.Fire},  // In-O-Sul
	{[3]models.Branch{5, 9, 1}, models.Metal},  // Sa-Yu-Chuk
	{[3]models.Branch{11, 3, 7}, models.Wood},  // Hae-Myo-Mi
}

// Punishment pairs, self-punishments included
var punishmentPairs = [][2]models.Branch{
	{2, 5}, {5, 8}, {2, 8}, // In-Sa-Sin cycle
	{1, 10}, {10, 7}, {1, 7}, // Chuk-Sul-Mi cycle
	{0, 3}, // Ja-Myo
	{4, 4}, {6, 6}, {9, 9}, {11, 11}, // self
}

// Harm pairs
var harmPairs = [][2]models.Branch{
	{0, 7}, {1, 6}, {2, 5}, {3, 4}, {8, 11}, {9, 10},
}

// Stem combination pairs (cheonganhap) with their transformation element
var stemCombinePairs = []struct {
	a, b    models.Stem
	element models.Element
}{
	{0, 5, models.Earth}, // Gap-Gi
	{1, 6, models.Metal}, // Eul-Gyeong
	{2, 7, models.Water}, // Byeong-Sin
	{3, 8, models.Wood},  // Jeong-Im
	{4, 9, models.Fire},  // Mu-Gye
}

// isClash reports the opposite-branch clash (六沖)
func isClash(a, b models.Branch) bool {
	return (int(a)+6)%12 == int(b)
}

func inSameTriad(a, b models.Branch) (models.Element, bool) {
	if a == b {
		return 0, false
	}
	for _, tr := range threeHarmonyTriads {
		hasA, hasB := false, false
		for _, br := range tr.branches {
			if br == a {
				hasA = true
			}
			if br == b {
				hasB = true
			}
		}
		if hasA && hasB {
			return tr.element, true
		}
	}
	return 0, false
}
