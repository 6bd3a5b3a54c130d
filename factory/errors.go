package factory

import "errors"

var (
	ErrNotOwner          = errors.New("factory: caller is not the owner")
	ErrNotCreator        = errors.New("factory: caller is not the sale creator")
	ErrSaleNotFound      = errors.New("factory: sale not registered")
	ErrNotDeployed       = errors.New("factory: sale not deployed yet")
	ErrSaleLaunched      = errors.New("factory: sale already launched")
	ErrAlreadyClaimed    = errors.New("factory: tokens already claimed")
	ErrInitialBuyTooBig  = errors.New("factory: initial buy exceeds cap")
	ErrLaunchFailed      = errors.New("factory: launch failed, buy applied")
	ErrInvalidMetadata   = errors.New("factory: metadata is not valid JSON")
	ErrInvalidConfig     = errors.New("factory: invalid configuration")
	ErrInvalidSaleParams = errors.New("factory: invalid sale parameters")
	ErrReentrantCall     = errors.New("factory: reentrant call")
)
