package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/internal/wishlist"
	"github.com/angelmondragon/storefront/pkg/money"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func colorNames(colors []catalog.Color) string {
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func priceLabel(p catalog.Product, currency string) string {
	label := money.Format(p.Price, currency)
	if p.OnSale() {
		label += " (was " + money.Format(*p.CompareAtPrice, currency) + ")"
	}
	return label
}

func printProducts(w io.Writer, items []catalog.Product, currency string) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SLUG\tNAME\tCATEGORY\tPRICE")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Slug, p.Name, p.Category, priceLabel(p, currency))
	}
	return tw.Flush()
}

func printShop(w io.Writer, result catalog.ShopResult, currency string) error {
	fmt.Fprintf(w, "%s\n%d products, page %d of %d\n\n", result.Spec.Location(), result.Page.Total, result.Page.Page, max(result.Page.TotalPages, 1))
	if err := printProducts(w, result.Page.Products, currency); err != nil {
		return err
	}
	fmt.Fprintf(w, "\ncategories: %s\ncollections: %s\n",
		strings.Join(result.Facets.Categories, ", "), strings.Join(result.Facets.Collections, ", "))
	return nil
}

func printProduct(w io.Writer, p catalog.Product, related []catalog.Product, saved bool, currency string) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "name\t%s\n", p.Name)
	fmt.Fprintf(tw, "id\t%s\n", p.ID)
	fmt.Fprintf(tw, "price\t%s\n", priceLabel(p, currency))
	fmt.Fprintf(tw, "category\t%s\n", p.Category)
	fmt.Fprintf(tw, "sizes\t%s\n", strings.Join(p.Sizes, ", "))
	fmt.Fprintf(tw, "colors\t%s\n", colorNames(p.Colors))
	fmt.Fprintf(tw, "in stock\t%t\n", p.InStock)
	fmt.Fprintf(tw, "wishlisted\t%t\n", saved)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s\n", p.Description)
	if len(related) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nyou may also like:")
	return printProducts(w, related, currency)
}

func printTotals(tw *tabwriter.Writer, totals pricing.Totals) {
	fmt.Fprintf(tw, "\t\t\tsubtotal\t%s\n", money.Format(totals.Subtotal, totals.Currency))
	fmt.Fprintf(tw, "\t\t\tshipping\t%s\n", money.Format(totals.Shipping, totals.Currency))
	fmt.Fprintf(tw, "\t\t\ttax\t%s\n", money.Format(totals.Tax, totals.Currency))
	fmt.Fprintf(tw, "\t\t\ttotal\t%s\n", money.Format(totals.Total, totals.Currency))
}

func printCart(w io.Writer, items []cart.Item, totals pricing.Totals) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "your cart is empty")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tPRODUCT\tSIZE/COLOR\tQTY\tLINE TOTAL")
	for i, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s / %s\t%d\t%s\n", i+1, item.Product.Name, item.Size, item.Color, item.Quantity,
			money.Format(item.LineTotal(), totals.Currency))
	}
	printTotals(tw, totals)
	return tw.Flush()
}

func printWishlist(w io.Writer, items []wishlist.Item, currency string) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "your wishlist is empty")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "PRODUCT ID\tNAME\tPRICE\tSAVED")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.ProductID, item.Product.Name,
			money.Format(item.Product.Price, currency), item.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

func printOrders(w io.Writer, result orders.ListResult) error {
	if len(result.Orders) == 0 {
		fmt.Fprintln(w, "no orders yet")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ORDER\tPLACED\tITEMS\tTOTAL\tSTATUS")
	for _, o := range result.Orders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.ItemCount(),
			money.Format(o.Total, o.Currency), o.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if result.NextCursor != "" {
		fmt.Fprintf(w, "\nmore: storefront orders -cursor %s\n", result.NextCursor)
	}
	return nil
}

func printPlaced(w io.Writer, o *orders.Order) error {
	if o == nil {
		return nil
	}
	fmt.Fprintf(w, "order %s placed, %s\n", o.ID, o.Status)
	fmt.Fprintf(w, "shipping: %s\npayment:  %s (%s)\n\n", o.ShippingMethod.Label(), o.PaymentMethod.Label(), o.PaymentStatus)
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tPRODUCT\tSIZE/COLOR\tQTY\tLINE TOTAL")
	for i, l := range o.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%s / %s\t%d\t%s\n", i+1, l.Name, l.Size, l.Color, l.Quantity,
			money.Format(l.UnitPrice*int64(l.Quantity), o.Currency))
	}
	printTotals(tw, pricing.Totals{Subtotal: o.Subtotal, Shipping: o.Shipping, Tax: o.Tax, Total: o.Total, Currency: o.Currency})
	return tw.Flush()
}
