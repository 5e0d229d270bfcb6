// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/manifoldco/promptui"

	"github.com/lpvault/lpvault/codec"
	"github.com/lpvault/lpvault/consts"
	"github.com/lpvault/lpvault/utils"
)

// prompt runs a single text prompt and returns the trimmed input.
func prompt(label string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	raw, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func notEmpty(input string) error {
	if len(input) == 0 {
		return ErrInputEmpty
	}
	return nil
}

func (*Handler) PromptAddress(label string) (codec.Address, error) {
	text, err := prompt(label, func(input string) error {
		if err := notEmpty(input); err != nil {
			return err
		}
		_, err := codec.ParseAddress(strings.TrimSpace(input))
		return err
	})
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ParseAddress(text)
}

func (*Handler) PromptString(label string, min int, max int) (string, error) {
	return prompt(label, func(input string) error {
		if len(input) < min {
			return ErrInputEmpty
		}
		if len(input) > max {
			return ErrInputTooLarge
		}
		return nil
	})
}

// PromptAsset reads an asset ID, with the native symbol accepted as an
// alias for native value when [allowNative] is set.
func (h *Handler) PromptAsset(label string, allowNative bool) (ids.ID, error) {
	symbol := h.c.Symbol()
	text := label
	if allowNative {
		text = fmt.Sprintf("%s (use %s for native value)", label, symbol)
	}
	asset, err := prompt(text, func(input string) error {
		if err := notEmpty(input); err != nil {
			return err
		}
		if allowNative && input == symbol {
			return nil
		}
		_, err := ids.FromString(input)
		return err
	})
	if err != nil {
		return ids.Empty, err
	}
	var assetID ids.ID
	if asset != symbol {
		assetID, err = ids.FromString(asset)
		if err != nil {
			return ids.Empty, err
		}
	}
	if !allowNative && assetID == consts.NativeAssetID {
		return ids.Empty, ErrInvalidChoice
	}
	return assetID, nil
}

// PromptAmount reads an amount of [assetID], holding it to [balance]
// and any extra [f] constraint. Native amounts are entered in decimal
// form, other assets in raw units.
func (*Handler) PromptAmount(
	label string,
	assetID ids.ID,
	balance uint64,
	f func(input uint64) error,
) (uint64, error) {
	parse := func(input string) (uint64, error) {
		if assetID == consts.NativeAssetID {
			return utils.ParseBalance(input)
		}
		return strconv.ParseUint(input, 10, 64)
	}
	raw, err := prompt(label, func(input string) error {
		if err := notEmpty(input); err != nil {
			return err
		}
		amount, err := parse(input)
		if err != nil {
			return err
		}
		if amount > balance {
			return ErrInsufficientBalance
		}
		if f != nil {
			return f(amount)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return parse(raw)
}

func (*Handler) PromptInt(label string) (int, error) {
	raw, err := prompt(label, func(input string) error {
		if err := notEmpty(input); err != nil {
			return err
		}
		amount, err := strconv.Atoi(input)
		if err != nil {
			return err
		}
		if amount <= 0 {
			return fmt.Errorf("%d must be > 0", amount)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(raw)
}

func (*Handler) PromptUint64(label string) (uint64, error) {
	raw, err := prompt(label, func(input string) error {
		if err := notEmpty(input); err != nil {
			return err
		}
		_, err := strconv.ParseUint(input, 10, 64)
		return err
	})
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(raw, 10, 64)
}

func (*Handler) PromptChoice(label string, max int) (int, error) {
	raw, err := prompt(label, func(input string) error {
		if err := notEmpty(input); err != nil {
			return err
		}
		index, err := strconv.Atoi(input)
		if err != nil {
			return err
		}
		if index >= max || index < 0 {
			return ErrIndexOutOfRange
		}
		return nil
	})
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(raw)
}

func (*Handler) PromptBool(label string) (bool, error) {
	text, err := prompt(fmt.Sprintf("%s (y/n)", label), func(input string) error {
		if err := notEmpty(input); err != nil {
			return err
		}
		switch strings.ToLower(input) {
		case "y", "n":
			return nil
		}
		return ErrInvalidChoice
	})
	if err != nil {
		return false, err
	}
	return strings.ToLower(text) == "y", nil
}

func (h *Handler) PromptContinue() (bool, error) {
	cont, err := h.PromptBool("continue")
	if err != nil {
		return false, err
	}
	if !cont {
		utils.Outf("{{red}}exiting...{{/}}\n")
	}
	return cont, nil
}

func (*Handler) PromptID(label string) (ids.ID, error) {
	raw, err := prompt(label, func(input string) error {
		if err := notEmpty(input); err != nil {
			return err
		}
		_, err := ids.FromString(input)
		return err
	})
	if err != nil {
		return ids.Empty, err
	}
	return ids.FromString(raw)
}

// PromptEndpoint lists the stored service endpoints and returns the
// selected one.
func (h *Handler) PromptEndpoint(label string) (string, error) {
	endpoints, err := h.GetEndpoints()
	if err != nil {
		return "", err
	}
	if len(endpoints) == 0 {
		return "", ErrNoEndpoints
	}

	utils.Outf("{{cyan}}stored endpoints:{{/}} %d\n", len(endpoints))
	for i, uri := range endpoints {
		utils.Outf("%d) {{cyan}}uri:{{/}} %s\n", i, uri)
	}
	index, err := h.PromptChoice(label, len(endpoints))
	if err != nil {
		return "", err
	}
	return endpoints[index], nil
}

func (*Handler) ValueString(assetID ids.ID, value uint64) string {
	if assetID == consts.NativeAssetID {
		return utils.FormatBalance(value)
	}
	// Custom assets are denoted in raw units
	return strconv.FormatUint(value, 10)
}

func (h *Handler) AssetString(assetID ids.ID) string {
	if assetID == consts.NativeAssetID {
		return h.c.Symbol()
	}
	return assetID.String()
}
