// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
)

// State
// 0x0/ (balance)
//   -> [owner|asset] => balance
// 0x1/ (asset)
//   -> [asset] => supply|minter
// 0x2/ (reserves)
//   -> => base|quote
// 0x3/ (order)
//   -> [orderID] => side|limit|remaining|owner
// 0x4/ (role)
//   -> [role|owner] => 0x1
// 0x5/ (genesis)
//   -> => genesis bytes

var (
	reservesKey = []byte{reservesPrefix}
	genesisKey  = []byte{genesisPrefix}
	presentByte = []byte{0x1}

	balanceKeyPool = sync.Pool{
		New: func() any {
			return make([]byte, 1+codec.AddressLen+consts.IDLen)
		},
	}
)

// [balancePrefix] + [owner] + [asset]
func BalanceKey(owner codec.Address, asset ids.ID) (k []byte) {
	k = balanceKeyPool.Get().([]byte)
	k[0] = balancePrefix
	copy(k[1:], owner[:])
	copy(k[1+codec.AddressLen:], asset[:])
	return
}

// If the returned balance is 0, the account may simply not exist.
func GetBalance(
	_ context.Context,
	db database.KeyValueReader,
	owner codec.Address,
	asset ids.ID,
) (uint64, error) {
	k := BalanceKey(owner, asset)
	bal, _, err := innerGetBalance(db.Get(k))
	balanceKeyPool.Put(k)
	return bal, err
}

func innerGetBalance(
	v []byte,
	err error,
) (uint64, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return binary.BigEndian.Uint64(v), true, nil
}

func SetBalance(
	_ context.Context,
	mu database.KeyValueWriter,
	owner codec.Address,
	asset ids.ID,
	balance uint64,
) error {
	k := BalanceKey(owner, asset)
	return mu.Put(k, binary.BigEndian.AppendUint64(nil, balance))
}

func AddBalance(
	_ context.Context,
	mu database.KeyValueReaderWriter,
	owner codec.Address,
	asset ids.ID,
	amount uint64,
	create bool,
) error {
	k := BalanceKey(owner, asset)
	bal, exists, err := innerGetBalance(mu.Get(k))
	if err != nil {
		return err
	}
	// Don't add balance if account doesn't exist. This
	// can be useful when processing refunds.
	if !exists && !create {
		return nil
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not add balance (asset=%s, bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			asset,
			bal,
			owner,
			amount,
		)
	}
	return mu.Put(k, binary.BigEndian.AppendUint64(nil, nbal))
}

func SubBalance(
	_ context.Context,
	mu database.KeyValueReaderWriterDeleter,
	owner codec.Address,
	asset ids.ID,
	amount uint64,
) error {
	k := BalanceKey(owner, asset)
	bal, _, err := innerGetBalance(mu.Get(k))
	if err != nil {
		return err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not subtract balance (asset=%s, bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			asset,
			bal,
			owner,
			amount,
		)
	}
	if nbal == 0 {
		// If there is no balance left, we should delete the record instead of
		// setting it to 0.
		return mu.Delete(k)
	}
	return mu.Put(k, binary.BigEndian.AppendUint64(nil, nbal))
}

// [assetPrefix] + [asset]
func AssetKey(asset ids.ID) (k []byte) {
	k = make([]byte, 1+consts.IDLen)
	k[0] = assetPrefix
	copy(k[1:], asset[:])
	return
}

func GetAsset(
	_ context.Context,
	db database.KeyValueReader,
	asset ids.ID,
) (bool, uint64, codec.Address, error) {
	k := AssetKey(asset)
	v, err := db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return false, 0, codec.EmptyAddress, nil
	}
	if err != nil {
		return false, 0, codec.EmptyAddress, err
	}
	supply := binary.BigEndian.Uint64(v)
	var minter codec.Address
	copy(minter[:], v[consts.Uint64Len:])
	return true, supply, minter, nil
}

func SetAsset(
	_ context.Context,
	mu database.KeyValueWriter,
	asset ids.ID,
	supply uint64,
	minter codec.Address,
) error {
	k := AssetKey(asset)
	v := make([]byte, consts.Uint64Len+codec.AddressLen)
	binary.BigEndian.PutUint64(v, supply)
	copy(v[consts.Uint64Len:], minter[:])
	return mu.Put(k, v)
}

// GetReserves returns the recorded base and quote reserves. A pool
// that has never been written reports (0, 0).
func GetReserves(
	_ context.Context,
	db database.KeyValueReader,
) (uint64, uint64, error) {
	v, err := db.Get(reservesKey)
	if errors.Is(err, database.ErrNotFound) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return binary.BigEndian.Uint64(v), binary.BigEndian.Uint64(v[consts.Uint64Len:]), nil
}

func SetReserves(
	_ context.Context,
	mu database.KeyValueWriter,
	base uint64,
	quote uint64,
) error {
	v := make([]byte, consts.Uint64Len*2)
	binary.BigEndian.PutUint64(v, base)
	binary.BigEndian.PutUint64(v[consts.Uint64Len:], quote)
	return mu.Put(reservesKey, v)
}

// [orderPrefix] + [orderID]
func OrderKey(orderID ids.ID) (k []byte) {
	k = make([]byte, 1+consts.IDLen)
	k[0] = orderPrefix
	copy(k[1:], orderID[:])
	return
}

func SetOrder(
	_ context.Context,
	mu database.KeyValueWriter,
	orderID ids.ID,
	side byte,
	limit uint64,
	remaining uint64,
	owner codec.Address,
) error {
	k := OrderKey(orderID)
	v := make([]byte, consts.ByteLen+consts.Uint64Len*2+codec.AddressLen)
	v[0] = side
	binary.BigEndian.PutUint64(v[consts.ByteLen:], limit)
	binary.BigEndian.PutUint64(v[consts.ByteLen+consts.Uint64Len:], remaining)
	copy(v[consts.ByteLen+consts.Uint64Len*2:], owner[:])
	return mu.Put(k, v)
}

func GetOrder(
	_ context.Context,
	db database.KeyValueReader,
	orderID ids.ID,
) (
	bool, // exists
	byte, // side
	uint64, // limit
	uint64, // remaining
	codec.Address, // owner
	error,
) {
	k := OrderKey(orderID)
	v, err := db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return false, 0, 0, 0, codec.EmptyAddress, nil
	}
	if err != nil {
		return false, 0, 0, 0, codec.EmptyAddress, err
	}
	r, err := parseOrder(v)
	if err != nil {
		return false, 0, 0, 0, codec.EmptyAddress, err
	}
	return true, r.Side, r.Limit, r.Remaining, r.Owner, nil
}

func DeleteOrder(
	_ context.Context,
	mu database.KeyValueDeleter,
	orderID ids.ID,
) error {
	return mu.Delete(OrderKey(orderID))
}

// OrderRecord is the durable form of a resting order.
type OrderRecord struct {
	ID        ids.ID
	Side      byte
	Limit     uint64
	Remaining uint64
	Owner     codec.Address
}

// GetOpenOrders scans every resting order. Used to rebuild the
// in-memory book on startup.
func GetOpenOrders(
	_ context.Context,
	db database.Iteratee,
) ([]*OrderRecord, error) {
	it := db.NewIteratorWithPrefix([]byte{orderPrefix})
	defer it.Release()

	records := []*OrderRecord{}
	for it.Next() {
		k := it.Key()
		if len(k) != 1+consts.IDLen {
			return nil, ErrCorruptRecord
		}
		r, err := parseOrder(it.Value())
		if err != nil {
			return nil, err
		}
		copy(r.ID[:], k[1:])
		records = append(records, r)
	}
	return records, it.Error()
}

func parseOrder(v []byte) (*OrderRecord, error) {
	if len(v) != consts.ByteLen+consts.Uint64Len*2+codec.AddressLen {
		return nil, ErrCorruptRecord
	}
	r := &OrderRecord{
		Side:      v[0],
		Limit:     binary.BigEndian.Uint64(v[consts.ByteLen:]),
		Remaining: binary.BigEndian.Uint64(v[consts.ByteLen+consts.Uint64Len:]),
	}
	copy(r.Owner[:], v[consts.ByteLen+consts.Uint64Len*2:])
	return r, nil
}

// [rolePrefix] + [role] + [owner]
func RoleKey(role byte, owner codec.Address) (k []byte) {
	k = make([]byte, 1+consts.ByteLen+codec.AddressLen)
	k[0] = rolePrefix
	k[1] = role
	copy(k[2:], owner[:])
	return
}

func HasRole(
	_ context.Context,
	db database.KeyValueReader,
	role byte,
	owner codec.Address,
) (bool, error) {
	return db.Has(RoleKey(role, owner))
}

func GrantRole(
	_ context.Context,
	mu database.KeyValueWriter,
	role byte,
	owner codec.Address,
) error {
	return mu.Put(RoleKey(role, owner), presentByte)
}

func RevokeRole(
	_ context.Context,
	mu database.KeyValueDeleter,
	role byte,
	owner codec.Address,
) error {
	return mu.Delete(RoleKey(role, owner))
}

// GetGenesis returns the committed genesis document, if any.
func GetGenesis(
	_ context.Context,
	db database.KeyValueReader,
) (bool, []byte, error) {
	v, err := db.Get(genesisKey)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return true, v, nil
}

func SetGenesis(
	_ context.Context,
	mu database.KeyValueWriter,
	v []byte,
) error {
	return mu.Put(genesisKey, v)
}
