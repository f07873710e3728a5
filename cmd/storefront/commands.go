package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

const usage = `usage: storefront <command> [args]

  shop [location] [-page n] [-limit n]   e.g. shop "/shop/category/bottoms?sort=newest"
  product <slug>
  featured [-limit n]
  cart | cart add <slug> -size S -color C [-qty n] | cart remove <line> | cart qty <line> <n> | cart clear
  wishlist | wishlist sync | wishlist add <slug> | wishlist remove <productId>
  login <email> <password> | register <email> <password> | logout | whoami
  orders [-limit n] [-cursor c]
  checkout -email E -first F -last L -address A -city C -state S -zip Z -phone P
           [-shipping standard|express] [-payment cod|paypal|credit-card] [card flags]
`

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "shop":
		return a.shop(ctx, rest)
	case "product":
		return a.product(ctx, rest)
	case "featured":
		return a.featured(ctx, rest)
	case "cart":
		return a.cartCmd(ctx, rest)
	case "wishlist":
		return a.wishlistCmd(ctx, rest)
	case "login", "register":
		return a.authenticate(ctx, cmd, rest)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "orders":
		return a.orders(ctx, rest)
	case "checkout":
		return a.checkout(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown command %q", cmd))
	}
}

// parseArgs lets flags and positional arguments interleave.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid arguments")
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func requireArgs(positional []string, n int, what string) error {
	if len(positional) < n {
		return pkgerrors.New(pkgerrors.CodeValidation, what+" is required")
	}
	return nil
}

func (a *app) shop(ctx context.Context, args []string) error {
	fs := newFlagSet("shop")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", pagination.DefaultPageSize, "products per page")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	location := "/shop"
	if len(positional) > 0 {
		location = positional[0]
	}
	u, err := url.Parse(location)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shop location")
	}
	spec, err := catalog.ParseLocation(u.Path, u.RawQuery)
	if err != nil {
		return err
	}
	if *page < 1 || *page > pagination.MaxPageNumber {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("page must be between 1 and %d", pagination.MaxPageNumber))
	}
	if *limit < 1 || *limit > pagination.MaxPageSize {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("limit must be between 1 and %d", pagination.MaxPageSize))
	}
	result, err := a.browser.Shop(ctx, spec, *page, *limit)
	if err != nil {
		return err
	}
	return printShop(a.out, result, a.rules.Currency)
}

func (a *app) product(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "slug"); err != nil {
		return err
	}
	p, err := a.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	related, err := a.browser.Related(ctx, p, 4)
	if err != nil {
		return err
	}
	return printProduct(a.out, p, related, a.wishlist.Contains(p.ID), a.rules.Currency)
}

func (a *app) featured(ctx context.Context, args []string) error {
	fs := newFlagSet("featured")
	limit := fs.Int("limit", 8, "number of products")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	items, err := a.browser.Featured(ctx, *limit)
	if err != nil {
		return err
	}
	return printProducts(a.out, items, a.rules.Currency)
}

func (a *app) lookup(ctx context.Context, slug string) (catalog.Product, error) {
	p, ok, err := a.browser.Product(ctx, slug)
	if err != nil {
		return catalog.Product{}, err
	}
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", slug))
	}
	return p, nil
}

func (a *app) cartCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return printCart(a.out, a.cart.Items(), a.cart.Summary(a.rules))
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "add":
		fs := newFlagSet("cart add")
		size := fs.String("size", "", "size")
		color := fs.String("color", "", "color name")
		qty := fs.Int("qty", 1, "quantity")
		positional, err := parseArgs(fs, rest)
		if err != nil {
			return err
		}
		if err := requireArgs(positional, 1, "slug"); err != nil {
			return err
		}
		p, err := a.lookup(ctx, positional[0])
		if err != nil {
			return err
		}
		if err := a.cart.AddItem(ctx, p, *qty, *size, *color); err != nil {
			return err
		}
	case "remove":
		if err := requireArgs(rest, 1, "line"); err != nil {
			return err
		}
		lineID, err := a.resolveLine(rest[0])
		if err != nil {
			return err
		}
		if err := a.cart.RemoveItem(ctx, lineID); err != nil {
			return err
		}
	case "qty":
		if err := requireArgs(rest, 2, "line and quantity"); err != nil {
			return err
		}
		lineID, err := a.resolveLine(rest[0])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "quantity must be a number")
		}
		if err := a.cart.UpdateQuantity(ctx, lineID, qty); err != nil {
			return err
		}
	case "clear":
		if err := a.cart.Clear(ctx); err != nil {
			return err
		}
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown cart command %q", sub))
	}
	return printCart(a.out, a.cart.Items(), a.cart.Summary(a.rules))
}

// resolveLine accepts a 1-based line number as printed by "cart" or a line id.
func (a *app) resolveLine(ref string) (string, error) {
	items := a.cart.Items()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("no cart line %d", n))
		}
		return items[n-1].ID, nil
	}
	return ref, nil
}

func (a *app) wishlistCmd(ctx context.Context, args []string) error {
	userID := a.account.CurrentUserID()
	if len(args) > 0 {
		switch args[0] {
		case "sync":
			if err := a.wishlist.FetchAll(ctx, userID); err != nil {
				return err
			}
		case "add":
			if err := requireArgs(args[1:], 1, "slug"); err != nil {
				return err
			}
			p, err := a.lookup(ctx, args[1])
			if err != nil {
				return err
			}
			if err := a.wishlist.Add(ctx, userID, p); err != nil {
				return err
			}
		case "remove":
			if err := requireArgs(args[1:], 1, "product id"); err != nil {
				return err
			}
			if err := a.wishlist.Remove(ctx, userID, args[1]); err != nil {
				return err
			}
		default:
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown wishlist command %q", args[0]))
		}
	}
	return printWishlist(a.out, a.wishlist.Items(), a.rules.Currency)
}

func (a *app) authenticate(ctx context.Context, cmd string, args []string) error {
	if err := requireArgs(args, 2, "email and password"); err != nil {
		return err
	}
	call := a.account.Login
	if cmd == "register" {
		call = a.account.Register
	}
	if err := call(ctx, args[0], args[1]); err != nil {
		return err
	}
	if err := a.wishlist.FetchAll(ctx, a.account.CurrentUserID()); err != nil {
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "wishlist.sync_failed")
	}
	return a.whoami(ctx)
}

func (a *app) logout(ctx context.Context) error {
	if err := a.account.Logout(ctx); err != nil {
		return err
	}
	if err := a.wishlist.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.account.Restore(ctx); err != nil {
		return err
	}
	u := a.account.User()
	if u == nil {
		fmt.Fprintln(a.out, "not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", u.Email, u.ID)
	return nil
}

func (a *app) orders(ctx context.Context, args []string) error {
	fs := newFlagSet("orders")
	limit := fs.Int("limit", pagination.DefaultLimit, "orders per page")
	cursor := fs.String("cursor", "", "cursor from a previous page")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	if a.account.AccessToken() == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to see your orders")
	}
	result, err := a.client.ListOrders(ctx, orders.ListParams{Limit: *limit, Cursor: *cursor})
	if err != nil {
		return err
	}
	return printOrders(a.out, result)
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := newFlagSet("checkout")
	var info orders.Address
	fs.StringVar(&info.Email, "email", "", "contact email")
	fs.StringVar(&info.FirstName, "first", "", "first name")
	fs.StringVar(&info.LastName, "last", "", "last name")
	fs.StringVar(&info.Address, "address", "", "street address")
	fs.StringVar(&info.Apartment, "apartment", "", "apartment, suite, etc.")
	fs.StringVar(&info.City, "city", "", "city")
	fs.StringVar(&info.State, "state", "", "state")
	fs.StringVar(&info.PostalCode, "zip", "", "postal code")
	fs.StringVar(&info.Phone, "phone", "", "phone")
	shipping := fs.String("shipping", string(enums.ShippingMethodStandard), "standard|express")
	var payment checkout.Payment
	method := fs.String("payment", string(enums.PaymentMethodCOD), "cod|paypal|credit-card")
	fs.StringVar(&payment.CardName, "card-name", "", "name on card")
	fs.StringVar(&payment.CardNumber, "card-number", "", "card number")
	fs.StringVar(&payment.Expiry, "card-expiry", "", "MM/YY")
	fs.StringVar(&payment.CVC, "card-cvc", "", "CVC")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	if info.Email == "" {
		if u := a.account.User(); u != nil {
			info.Email = u.Email
		}
	}
	payment.Method = enums.PaymentMethod(strings.TrimSpace(*method))

	wizard, err := checkout.NewWizard(checkout.WizardParams{Cart: a.cart, Placer: a.client, Rules: a.rules, Logger: a.logg})
	if err != nil {
		return err
	}
	wizard.SetInformation(info)
	if err := wizard.Next(ctx); err != nil {
		return err
	}
	wizard.SetShipping(enums.ShippingMethod(strings.TrimSpace(*shipping)))
	if err := wizard.Next(ctx); err != nil {
		return err
	}
	wizard.SetPayment(payment)
	if err := wizard.Next(ctx); err != nil {
		return err
	}
	return printPlaced(a.out, wizard.Placed())
}
