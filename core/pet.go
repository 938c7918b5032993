package core

// PetState is the sprite state rendered by the desktop pet
type PetState string

const (
	PetIdle      PetState = "idle"
	PetHappy     PetState = "happy"
	PetAngry     PetState = "angry"
	PetTraveling PetState = "traveling"
	PetExcited   PetState = "excited"
	PetRich      PetState = "rich"
	PetSleeping  PetState = "sleeping"
	PetCrying    PetState = "crying"
)

var statusStates = map[FrogStatus]PetState{
	FrogIdle:      PetIdle,
	FrogTraveling: PetTraveling,
	FrogReturning: PetTraveling,
}

// StateForStatus maps a remote frog status to its sprite state
func StateForStatus(status FrogStatus) PetState {
	if s, ok := statusStates[status]; ok {
		return s
	}
	return PetIdle
}
