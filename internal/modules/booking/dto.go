package booking

import (
	"time"

	"studiodesk/internal/domain"
)

type CreateBookingRequest struct {
	BookingType        string    `json:"bookingType" binding:"required,oneof=WALK_IN ADVANCE"`
	CustomerName       string    `json:"customerName" binding:"required"`
	CoupleName         string    `json:"coupleName"`
	PhotographyName    string    `json:"photographyName"`
	Phone              string    `json:"phone" binding:"required"`
	Persons            int       `json:"persons" binding:"required,gt=0"`
	SessionType        string    `json:"sessionType" binding:"required,oneof=ONE_HOUR TWO_HOUR THREE_HOUR HALF_DAY FULL_DAY CUSTOM"`
	CustomHours        int       `json:"customHours" binding:"omitempty,gt=0"`
	StartTime          time.Time `json:"startTime" binding:"required"`
	DiscountAmount     int64     `json:"discountAmount" binding:"omitempty,gte=0"`
	DiscountReference  string    `json:"discountReference"`
	DepositAmount      int64     `json:"depositAmount" binding:"omitempty,gte=0"`
	InitialRentPayment int64     `json:"initialRentPayment" binding:"omitempty,gte=0"`
	AdvanceTokenAmount int64     `json:"advanceTokenAmount" binding:"omitempty,gte=0"`
	PaymentMethod      string    `json:"paymentMethod" binding:"required,oneof=CASH UPI CARD OTHER"`
	Notes              string    `json:"notes"`
}

func (r CreateBookingRequest) toInput(actorID int64) CreateInput {
	return CreateInput{
		BookingType:        domain.BookingType(r.BookingType),
		CustomerName:       r.CustomerName,
		CoupleName:         r.CoupleName,
		PhotographyName:    r.PhotographyName,
		Phone:              r.Phone,
		Persons:            r.Persons,
		SessionType:        domain.SessionType(r.SessionType),
		CustomHours:        r.CustomHours,
		StartTime:          r.StartTime,
		DiscountAmount:     r.DiscountAmount,
		DiscountReference:  r.DiscountReference,
		DepositAmount:      r.DepositAmount,
		InitialRentPayment: r.InitialRentPayment,
		AdvanceTokenAmount: r.AdvanceTokenAmount,
		PaymentMethod:      domain.PaymentMethod(r.PaymentMethod),
		Notes:              r.Notes,
		ActorID:            actorID,
	}
}

type CheckInRequest struct {
	CollectedRent   int64  `json:"collectedRent" binding:"omitempty,gte=0"`
	SecurityDeposit int64  `json:"securityDeposit" binding:"omitempty,gte=0"`
	PaymentMethod   string `json:"paymentMethod" binding:"omitempty,oneof=CASH UPI CARD OTHER"`
}

type EndSessionRequest struct {
	ExitTime             *time.Time `json:"exitTime"`
	ExtraRentPayment     int64      `json:"extraRentPayment" binding:"omitempty,gte=0"`
	DepositReturnAmount  int64      `json:"depositReturnAmount" binding:"omitempty,gte=0"`
	ManualOvertimeAmount int64      `json:"manualOvertimeAmount" binding:"omitempty,gte=0"`
	DiscountAmount       *int64     `json:"discountAmount" binding:"omitempty"`
	DiscountReference    *string    `json:"discountReference"`
	PaymentMethod        string     `json:"paymentMethod" binding:"omitempty,oneof=CASH UPI CARD OTHER"`
	FromDeposit          bool       `json:"fromDeposit"`
}

type UpdateBookingRequest struct {
	CustomerName    *string    `json:"customerName"`
	CoupleName      *string    `json:"coupleName"`
	PhotographyName *string    `json:"photographyName"`
	Phone           *string    `json:"phone"`
	Notes           *string    `json:"notes"`
	Persons         *int       `json:"persons" binding:"omitempty,gt=0"`
	SessionType     *string    `json:"sessionType" binding:"omitempty,oneof=ONE_HOUR TWO_HOUR THREE_HOUR HALF_DAY FULL_DAY CUSTOM"`
	CustomHours     *int       `json:"customHours" binding:"omitempty,gt=0"`
	StartTime       *time.Time `json:"startTime"`
}

func (r UpdateBookingRequest) toInput() UpdateInput {
	in := UpdateInput{
		CustomerName:    r.CustomerName,
		CoupleName:      r.CoupleName,
		PhotographyName: r.PhotographyName,
		Phone:           r.Phone,
		Notes:           r.Notes,
		Persons:         r.Persons,
		CustomHours:     r.CustomHours,
		StartTime:       r.StartTime,
	}
	if r.SessionType != nil {
		st := domain.SessionType(*r.SessionType)
		in.SessionType = &st
	}
	return in
}
