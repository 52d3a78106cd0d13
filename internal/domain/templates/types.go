package templates

type CareType string

const (
	CareTypeFeeding     CareType = "feeding"
	CareTypeMedication  CareType = "medication"
	CareTypeGrooming    CareType = "grooming"
	CareTypeVaccination CareType = "vaccination"
	CareTypeDeworming   CareType = "deworming"
	CareTypeFleaTick    CareType = "flea_tick"
	CareTypeExercise    CareType = "exercise"
	CareTypeBath        CareType = "bath"
)

func ValidCareType(t CareType) bool {
	switch t {
	case CareTypeFeeding, CareTypeMedication, CareTypeGrooming, CareTypeVaccination,
		CareTypeDeworming, CareTypeFleaTick, CareTypeExercise, CareTypeBath:
		return true
	default:
		return false
	}
}
