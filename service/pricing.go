package service

import "errors"

var (
	ErrInvalidDiscount  = errors.New("discount percentage out of range")
	ErrInvalidBasePrice = errors.New("base price must be non-negative")
)

// 按折扣比例计算应付金额，单位分
// 折扣金额四舍五入到分，final = base - discount
func ComputeCharge(basePrice int64, discountPercentage int) (final int64, discount int64, err error) {
	if basePrice < 0 {
		return 0, 0, ErrInvalidBasePrice
	}
	if discountPercentage < 0 || discountPercentage > 100 {
		return 0, 0, ErrInvalidDiscount
	}
	discount = (basePrice*int64(discountPercentage) + 50) / 100
	final = basePrice - discount
	return final, discount, nil
}
